// Package physics holds the per-step force contributors and the integrator
// that advances a force-directed layout.
//
// All systems share one slot numbering: for slot i, entities[i], velocities[i],
// forces[i] and fixed[i] describe the same entity. A nil slot means the entity
// is not present this step and is skipped. Systems only add into existing
// force slots and never allocate new ones.
package physics

import (
	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/ident"
)

// Entity is a simulated node and its current position.
type Entity struct {
	ID       ident.ID
	Position geom.Vector
}

// Spring links two entities by id.
type Spring struct {
	From ident.ID
	To   ident.ID
}

// addForce adds f into forces[i] when that slot exists.
func addForce(forces []*geom.Vector, i int, f geom.Vector) {
	if i < 0 || i >= len(forces) || forces[i] == nil {
		return
	}
	forces[i].X += f.X
	forces[i].Y += f.Y
}

func slot[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
