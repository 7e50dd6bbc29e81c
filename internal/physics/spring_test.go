package physics

import (
	"math"
	"testing"

	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/ident"
)

func springFixture(p1, p2, v1, v2 geom.Vector) ([]*Entity, []*geom.Vector, []*geom.Vector) {
	entities := []*Entity{
		{ID: ident.String("a"), Position: p1},
		{ID: ident.String("b"), Position: p2},
	}
	velocities := []*geom.Vector{&v1, &v2}
	return entities, velocities, makeForces(2)
}

func TestSpringSystem(t *testing.T) {
	tests := []struct {
		name   string
		p2     geom.Vector
		v1     geom.Vector
		wantF1 geom.Vector
	}{
		// k = 0.08 * (250 - 150) = 8, spread over distance 250
		{"stretched pulls together", geom.Vector{X: 250}, geom.Vector{}, geom.Vector{X: 0.032}},
		// k = 0.08 * (50 - 150) = -8, spread over distance 50
		{"compressed pushes apart", geom.Vector{X: 50}, geom.Vector{}, geom.Vector{X: -0.16}},
		// At rest length only damping acts on relative velocity
		{"at rest damps velocity", geom.Vector{X: 150}, geom.Vector{X: 1}, geom.Vector{X: -0.003}},
	}

	sys := NewSpringSystem(DefaultSpringOptions())
	springs := []*Spring{{From: ident.String("a"), To: ident.String("b")}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, velocities, forces := springFixture(geom.Vector{}, tt.p2, tt.v1, geom.Vector{})
			sys.Update(springs, entities, velocities, forces)

			if math.Abs(forces[0].X-tt.wantF1.X) > 1e-12 || math.Abs(forces[0].Y-tt.wantF1.Y) > 1e-12 {
				t.Errorf("force on a = %v, want %v", *forces[0], tt.wantF1)
			}
			// Equal and opposite
			if math.Abs(forces[0].X+forces[1].X) > 1e-12 {
				t.Errorf("forces not opposite: %v vs %v", *forces[0], *forces[1])
			}
		})
	}
}

func TestSpringSystemCoincidentEndpoints(t *testing.T) {
	sys := NewSpringSystem(DefaultSpringOptions())
	entities, velocities, forces := springFixture(geom.Vector{X: 5, Y: 5}, geom.Vector{X: 5, Y: 5}, geom.Vector{}, geom.Vector{})
	sys.Update([]*Spring{{From: ident.String("a"), To: ident.String("b")}}, entities, velocities, forces)

	for i, f := range forces {
		if math.IsNaN(f.X) || math.IsNaN(f.Y) {
			t.Errorf("entity %d: NaN force %v", i, *f)
		}
	}
}

func TestSpringSystemSkips(t *testing.T) {
	sys := NewSpringSystem(DefaultSpringOptions())

	t.Run("unknown endpoint", func(t *testing.T) {
		entities, velocities, forces := springFixture(geom.Vector{}, geom.Vector{X: 300}, geom.Vector{}, geom.Vector{})
		sys.Update([]*Spring{{From: ident.String("a"), To: ident.String("zzz")}}, entities, velocities, forces)
		if *forces[0] != (geom.Vector{}) || *forces[1] != (geom.Vector{}) {
			t.Errorf("expected untouched forces, got %v %v", *forces[0], *forces[1])
		}
	})

	t.Run("self loop", func(t *testing.T) {
		entities, velocities, forces := springFixture(geom.Vector{}, geom.Vector{X: 300}, geom.Vector{}, geom.Vector{})
		sys.Update([]*Spring{{From: ident.String("a"), To: ident.String("a")}}, entities, velocities, forces)
		if *forces[0] != (geom.Vector{}) {
			t.Errorf("self loop should be ignored, got %v", *forces[0])
		}
	})

	t.Run("missing velocity", func(t *testing.T) {
		entities, velocities, forces := springFixture(geom.Vector{}, geom.Vector{X: 300}, geom.Vector{}, geom.Vector{})
		velocities[1] = nil
		sys.Update([]*Spring{{From: ident.String("a"), To: ident.String("b")}}, entities, velocities, forces)
		if *forces[0] != (geom.Vector{}) {
			t.Errorf("spring with a missing velocity should be skipped, got %v", *forces[0])
		}
	})

	t.Run("missing force slot", func(t *testing.T) {
		entities, velocities, forces := springFixture(geom.Vector{}, geom.Vector{X: 300}, geom.Vector{}, geom.Vector{})
		forces[1] = nil
		sys.Update([]*Spring{{From: ident.String("a"), To: ident.String("b")}, nil}, entities, velocities, forces)
		if *forces[0] != (geom.Vector{}) || forces[1] != nil {
			t.Errorf("spring with a missing force slot should be skipped")
		}
	})
}

func TestSpringSystemIntIDs(t *testing.T) {
	sys := NewSpringSystem(DefaultSpringOptions())
	entities := makeEntities(geom.Vector{}, geom.Vector{X: 10}, geom.Vector{X: 250})
	velocities := []*geom.Vector{{}, {}, {}}
	forces := makeForces(3)

	sys.Update([]*Spring{{From: ident.Int(0), To: ident.Int(2)}}, entities, velocities, forces)

	if forces[0].X <= 0 || forces[2].X >= 0 {
		t.Errorf("stretched spring should pull 0 and 2 together, got %v and %v", *forces[0], *forces[2])
	}
	if *forces[1] != (geom.Vector{}) {
		t.Errorf("entity 1 is not on the spring, got %v", *forces[1])
	}
}
