package layout

import (
	"github.com/onnwee/forcelayout/internal/config"
	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/physics"
)

// Config holds the simulation parameters for an Engine.
type Config struct {
	Force      physics.Options
	Spring     physics.SpringOptions
	Integrator physics.IntegratorOptions
	// CentralGravity is the strength of the pull toward the center of Bounds.
	CentralGravity float64
	TimeStep       float64

	// Bounds is the fixed simulation region. When FitBounds is set it only
	// supplies the gravity center and the seeding region.
	Bounds     geom.AABB
	FitBounds  bool
	FitPadding float64

	Seed int64
}

// DefaultConfig returns the standard simulation settings on a 1920x1080 canvas.
func DefaultConfig() Config {
	return Config{
		Force:          physics.DefaultOptions(),
		Spring:         physics.DefaultSpringOptions(),
		Integrator:     physics.DefaultIntegratorOptions(),
		CentralGravity: physics.DefaultCentralStrength,
		TimeStep:       1,
		Bounds:         geom.NewAABB(0, 0, 1920, 1080),
		FitBounds:      true,
		FitPadding:     0.1,
		Seed:           1,
	}
}

// FromConfig maps environment configuration onto engine settings.
func FromConfig(c *config.Config) Config {
	return Config{
		Force: physics.Options{
			Theta:                 c.Theta,
			GravitationalConstant: c.GravitationalConstant,
		},
		Spring: physics.SpringOptions{
			Stiffness:  c.SpringStiffness,
			RestLength: c.SpringRestLength,
			Damping:    c.SpringDamping,
		},
		Integrator: physics.IntegratorOptions{
			Damping:     c.IntegratorDamping,
			Mass:        1,
			MaxVelocity: c.IntegratorMaxVelocity,
		},
		CentralGravity: c.CentralGravity,
		TimeStep:       c.TimeStep,
		Bounds:         geom.NewAABB(c.BoundsX, c.BoundsY, c.BoundsWidth, c.BoundsHeight),
		FitBounds:      c.FitBounds,
		FitPadding:     c.FitPadding,
		Seed:           c.Seed,
	}
}
