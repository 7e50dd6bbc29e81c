// Package quadtree implements the spatial index behind the Barnes-Hut
// approximation. Every node aggregates the mass and center of mass of its
// subtree so distant groups of entities can be treated as a single body.
package quadtree

import (
	"iter"

	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/ident"
)

// MaxDepth is the deepest level a node may be split to. Leaves at this depth
// keep accepting entities regardless of how many they already hold.
const MaxDepth = 16

// Node is one region of the tree. A node is either a leaf holding entities
// directly or divided into exactly four children; it is never partially split.
type Node struct {
	bounds geom.AABB
	depth  int

	divided  bool
	children [4]*Node // Indexed by geom.Quadrant

	// Aggregates over the whole subtree
	mass         int
	centerOfMass geom.Vector

	// Entities stored in this leaf, empty once the node is divided
	elements map[ident.ID]geom.Vector
}

func newNode(bounds geom.AABB, depth int) *Node {
	return &Node{
		bounds:   bounds,
		depth:    depth,
		elements: make(map[ident.ID]geom.Vector),
	}
}

// insert stores id at pos somewhere in the subtree rooted at n. It returns
// false without touching the subtree when pos is outside n's bounds.
func (n *Node) insert(id ident.ID, pos geom.Vector) bool {
	if !n.bounds.OverlapsPoint(pos) {
		return false
	}

	// Empty leaves and maximum-depth leaves take the entity directly
	if n.depth >= MaxDepth || (!n.divided && len(n.elements) == 0) {
		n.elements[id] = pos
		n.addMass(pos, 1)
		return true
	}

	if !n.divided {
		n.divide()
	}

	for _, child := range n.children {
		if child.insert(id, pos) {
			n.addMass(pos, 1)
			return true
		}
	}
	return false
}

// addMass folds m units of mass at pos into the running center of mass.
func (n *Node) addMass(pos geom.Vector, m int) {
	total := n.mass + m
	inv := 1 / float64(total)
	n.centerOfMass.X = (n.centerOfMass.X*float64(n.mass) + pos.X*float64(m)) * inv
	n.centerOfMass.Y = (n.centerOfMass.Y*float64(n.mass) + pos.Y*float64(m)) * inv
	n.mass = total
}

// divide splits a leaf into four equally sized quadrants one level deeper and
// pushes the leaf's entities down into them. The node's own aggregates are
// left alone since they already account for those entities. Dividing an
// already divided node, or one at MaxDepth, does nothing.
func (n *Node) divide() {
	if n.divided || n.depth >= MaxDepth {
		return
	}

	for _, q := range geom.Quadrants {
		n.children[q] = newNode(n.bounds.Quadrant(q), n.depth+1)
	}
	n.divided = true

	for id, pos := range n.elements {
		for _, child := range n.children {
			if child.insert(id, pos) {
				break
			}
		}
	}
	clear(n.elements)
}

// Query returns the ids of every entity whose position falls within area.
// Only subtrees whose bounds overlap area are visited.
func (n *Node) Query(area geom.AABB) []ident.ID {
	return n.query(area, nil)
}

func (n *Node) query(area geom.AABB, out []ident.ID) []ident.ID {
	if !n.bounds.Overlaps(area) {
		return out
	}

	if !n.divided {
		for id, pos := range n.elements {
			if area.OverlapsPoint(pos) {
				out = append(out, id)
			}
		}
		return out
	}

	for _, child := range n.children {
		out = child.query(area, out)
	}
	return out
}

func (n *Node) Bounds() geom.AABB           { return n.bounds }
func (n *Node) Depth() int                  { return n.depth }
func (n *Node) Divided() bool               { return n.divided }
func (n *Node) Mass() int                   { return n.mass }
func (n *Node) CenterOfMass() geom.Vector   { return n.centerOfMass }
func (n *Node) Child(q geom.Quadrant) *Node { return n.children[q] }

// Holds reports whether id is stored directly in this node.
func (n *Node) Holds(id ident.ID) bool {
	_, ok := n.elements[id]
	return ok
}

// Len returns the number of entities stored directly in this node.
func (n *Node) Len() int { return len(n.elements) }

// Elements iterates over the entities stored directly in this node, in no
// particular order.
func (n *Node) Elements() iter.Seq2[ident.ID, geom.Vector] {
	return func(yield func(ident.ID, geom.Vector) bool) {
		for id, pos := range n.elements {
			if !yield(id, pos) {
				return
			}
		}
	}
}

// Tree is a quadtree rebuilt from scratch for every simulation step.
type Tree struct {
	root *Node
}

// New creates an empty tree covering bounds.
func New(bounds geom.AABB) *Tree {
	return &Tree{root: newNode(bounds, 0)}
}

// Insert adds an entity to the tree. Positions outside the tree's rectangle
// are rejected and leave the tree unchanged. Admitting only points inside the
// rectangle guarantees that every node routes what it accepts to one of its
// children.
func (t *Tree) Insert(id ident.ID, pos geom.Vector) bool {
	if !t.root.bounds.Contains(pos) {
		return false
	}
	return t.root.insert(id, pos)
}

// Query returns every entity id within area.
func (t *Tree) Query(area geom.AABB) []ident.ID {
	return t.root.Query(area)
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Bounds returns the region covered by the tree.
func (t *Tree) Bounds() geom.AABB { return t.root.bounds }

// Len returns the number of entities in the tree.
func (t *Tree) Len() int { return t.root.mass }

// Walk visits nodes depth-first, parents before children. Returning false
// from fn skips the node's children.
func (t *Tree) Walk(fn func(*Node) bool) {
	walk(t.root, fn)
}

func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) || !n.divided {
		return
	}
	for _, child := range n.children {
		walk(child, fn)
	}
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
	Mass     int
}

// Stats walks the tree and reports its shape.
func (t *Tree) Stats() Stats {
	s := Stats{Mass: t.root.mass}
	t.Walk(func(n *Node) bool {
		s.Nodes++
		if !n.divided {
			s.Leaves++
		}
		if n.depth > s.MaxDepth {
			s.MaxDepth = n.depth
		}
		return true
	})
	return s
}
