package physics

import (
	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/ident"
)

// SpringOptions configures edge attraction.
type SpringOptions struct {
	Stiffness  float64
	RestLength float64
	Damping    float64
}

// DefaultSpringOptions returns the standard spring settings.
func DefaultSpringOptions() SpringOptions {
	return SpringOptions{
		Stiffness:  0.08,
		RestLength: 150,
		Damping:    0.003,
	}
}

// SpringSystem pulls linked entities toward the rest length of their spring
// and damps their relative velocity.
type SpringSystem struct {
	opts SpringOptions
}

func NewSpringSystem(opts SpringOptions) *SpringSystem {
	return &SpringSystem{opts: opts}
}

// Update adds spring forces for every spring whose endpoints both have a
// position, a velocity and a force slot. Springs naming unknown or absent
// entities, or linking an entity to itself, are skipped.
func (s *SpringSystem) Update(springs []*Spring, entities []*Entity, velocities, forces []*geom.Vector) {
	index := make(map[ident.ID]int, len(entities))
	for i, e := range entities {
		if e != nil {
			index[e.ID] = i
		}
	}

	for _, sp := range springs {
		if sp == nil {
			continue
		}
		i, ok := index[sp.From]
		if !ok {
			continue
		}
		j, ok := index[sp.To]
		if !ok || i == j {
			continue
		}

		vi, vj := slot(velocities, i), slot(velocities, j)
		if vi == nil || vj == nil || slot(forces, i) == nil || slot(forces, j) == nil {
			continue
		}

		fi, fj := s.pair(entities[i].Position, entities[j].Position, *vi, *vj)
		addForce(forces, i, fi)
		addForce(forces, j, fj)
	}
}

// pair returns the forces on the two ends of one spring.
func (s *SpringSystem) pair(p1, p2, v1, v2 geom.Vector) (geom.Vector, geom.Vector) {
	dist := p1.DistanceTo(p2)
	if dist < 1 {
		dist = 1
	}

	n1 := p2.Sub(p1).Normalize()
	n2 := p1.Sub(p2).Normalize()
	k := s.opts.Stiffness * (dist - s.opts.RestLength)

	f1 := n1.Scale(k / dist).Sub(v1.Sub(v2).Scale(s.opts.Damping))
	f2 := n2.Scale(k / dist).Sub(v2.Sub(v1).Scale(s.opts.Damping))
	return f1, f2
}
