package physics

import (
	"math"

	"github.com/onnwee/forcelayout/internal/geom"
)

// CentralGravity pulls every entity toward a fixed center point.
type CentralGravity struct {
	Center   geom.Vector
	Strength float64
}

// DefaultCentralStrength is the standard pull toward the center.
const DefaultCentralStrength = 0.2

func NewCentralGravity(center geom.Vector, strength float64) *CentralGravity {
	return &CentralGravity{Center: center, Strength: strength}
}

// Update adds the central pull into the force slot of every present entity.
func (g *CentralGravity) Update(entities []*Entity, forces []*geom.Vector) {
	for i, e := range entities {
		if e == nil || slot(forces, i) == nil {
			continue
		}

		dx := g.Center.X - e.Position.X
		dy := g.Center.Y - e.Position.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 0.1 {
			dist = 0.1
			dx = 0.1
		}

		f := g.Strength / dist
		addForce(forces, i, geom.Vector{X: f * dx, Y: f * dy})
	}
}
