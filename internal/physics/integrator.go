package physics

import (
	"math"

	"github.com/onnwee/forcelayout/internal/geom"
)

// IntegratorOptions configures how accumulated force moves entities.
type IntegratorOptions struct {
	Damping     float64
	Mass        float64
	MaxVelocity float64
}

// DefaultIntegratorOptions returns the standard integrator settings.
func DefaultIntegratorOptions() IntegratorOptions {
	return IntegratorOptions{
		Damping:     0.9,
		Mass:        1,
		MaxVelocity: 100,
	}
}

// Integrator advances velocity and position from the force accumulator and
// then clears it for the next step.
type Integrator struct {
	opts IntegratorOptions
}

func NewIntegrator(opts IntegratorOptions) *Integrator {
	if opts.Mass == 0 {
		opts.Mass = 1
	}
	return &Integrator{opts: opts}
}

// Update moves every non-fixed entity that has a velocity and a force slot,
// then resets every present force slot to zero. It returns the kinetic energy
// of the moved entities after the step.
func (in *Integrator) Update(dt float64, entities []*Entity, velocities, forces []*geom.Vector, fixed []bool) float64 {
	energy := 0.0
	for i, e := range entities {
		f := slot(forces, i)
		if f == nil {
			continue
		}

		v := slot(velocities, i)
		if e != nil && v != nil && !(i < len(fixed) && fixed[i]) {
			v.X = in.velocity(v.X, f.X)
			v.Y = in.velocity(v.Y, f.Y)
			e.Position.X += v.X * dt
			e.Position.Y += v.Y * dt
			energy += 0.5 * in.opts.Mass * (v.X*v.X + v.Y*v.Y)
		}

		f.X, f.Y = 0, 0
	}
	return energy
}

func (in *Integrator) velocity(v, f float64) float64 {
	a := (f - in.opts.Damping*v) / in.opts.Mass
	v += a
	return math.Max(-in.opts.MaxVelocity, math.Min(in.opts.MaxVelocity, v))
}
