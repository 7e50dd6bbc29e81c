package physics

import (
	"math"

	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/ident"
	"github.com/onnwee/forcelayout/internal/quadtree"
)

// Options configures the Barnes-Hut repulsion.
type Options struct {
	// Theta is the size/distance ratio below which a branch is treated as a
	// single body. Zero disables the approximation entirely.
	Theta float64
	// GravitationalConstant scales the inverse-cube law. Negative values repel.
	GravitationalConstant float64
}

// DefaultOptions returns the standard repulsion settings.
func DefaultOptions() Options {
	return Options{
		Theta:                 0.7,
		GravitationalConstant: -2000,
	}
}

// ForceSystem computes approximate pairwise repulsion using a quadtree that
// is rebuilt from scratch on every Update.
type ForceSystem struct {
	opts Options
	tree *quadtree.Tree
}

// NewForceSystem creates a force system. Options are not validated.
func NewForceSystem(opts Options) *ForceSystem {
	return &ForceSystem{opts: opts}
}

// Options returns the configuration the system was created with.
func (s *ForceSystem) Options() Options { return s.opts }

// Tree returns the tree built by the most recent Construct or Update, or nil.
func (s *ForceSystem) Tree() *quadtree.Tree { return s.tree }

// Construct discards the previous tree and builds a new one over bounds from
// every present entity. It returns how many entities fell outside bounds.
func (s *ForceSystem) Construct(bounds geom.AABB, entities []*Entity) int {
	s.tree = quadtree.New(bounds)

	rejected := 0
	for _, e := range entities {
		if e == nil {
			continue
		}
		if !s.tree.Insert(e.ID, e.Position) {
			rejected++
		}
	}
	return rejected
}

// ForceOn returns the approximate repulsive force exerted on id, located at
// pos, by every entity under branch.
func (s *ForceSystem) ForceOn(id ident.ID, pos geom.Vector, branch *quadtree.Node) geom.Vector {
	// Empty node contributes no force
	if branch == nil || branch.Mass() == 0 {
		return geom.Vector{}
	}

	com := branch.CenterOfMass()
	dx := com.X - pos.X
	dy := com.Y - pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	// A leaf holding id contributes nothing to it, and the gate is never
	// applied to it, so the entity cannot feel its own mass.
	if !branch.Divided() && branch.Holds(id) {
		return geom.Vector{}
	}

	// Far enough away (s/d < theta): treat the branch as one body
	if branch.Bounds().MaxSide()/dist < s.opts.Theta {
		return s.pointForce(dist, dx, dy, branch.Mass())
	}

	if branch.Divided() {
		var f geom.Vector
		for _, q := range geom.Quadrants {
			f = f.Add(s.ForceOn(id, pos, branch.Child(q)))
		}
		return f
	}

	return s.pointForce(dist, dx, dy, branch.Mass())
}

// pointForce applies the inverse-cube law for mass located (dx, dy) away.
// Distances under 1 are clamped, with dx clamped alongside, so coincident
// entities never produce infinities.
func (s *ForceSystem) pointForce(dist, dx, dy float64, mass int) geom.Vector {
	if dist < 1 {
		dist = 1
		dx = 1
	}
	g := s.opts.GravitationalConstant * float64(mass) / (dist * dist * dist)
	return geom.Vector{X: dx * g, Y: dy * g}
}

// Update rebuilds the tree and adds each present entity's repulsion into its
// force slot. Entities without a force slot are skipped. It returns the
// number of entities rejected by the tree.
func (s *ForceSystem) Update(bounds geom.AABB, entities []*Entity, forces []*geom.Vector) int {
	rejected := s.Construct(bounds, entities)
	root := s.tree.Root()

	for i, e := range entities {
		if e == nil || slot(forces, i) == nil {
			continue
		}
		addForce(forces, i, s.ForceOn(e.ID, e.Position, root))
	}
	return rejected
}
