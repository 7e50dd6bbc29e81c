package layout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/exp/rand"
	xrate "golang.org/x/time/rate"

	"github.com/onnwee/forcelayout/internal/geom"
	"github.com/onnwee/forcelayout/internal/ident"
	"github.com/onnwee/forcelayout/internal/logger"
	"github.com/onnwee/forcelayout/internal/metrics"
	"github.com/onnwee/forcelayout/internal/physics"
	"github.com/onnwee/forcelayout/internal/quadtree"
	"github.com/onnwee/forcelayout/internal/tracing"
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("edge references unknown node")
)

// StepStats describes one simulation step.
type StepStats struct {
	Step     int
	Duration time.Duration
	Bounds   geom.AABB
	Tree     quadtree.Stats
	Rejected int
	Energy   float64
}

// Engine owns the simulation state for one graph. It is not safe for
// concurrent use.
type Engine struct {
	cfg Config

	ids        []ident.ID
	entities   []*physics.Entity
	velocities []*geom.Vector
	forces     []*geom.Vector
	fixed      []bool
	springs    []*physics.Spring

	repulsion  *physics.ForceSystem
	attraction *physics.SpringSystem
	gravity    *physics.CentralGravity
	integrator *physics.Integrator

	steps  int
	energy float64
}

// NewEngine validates g and seeds any node without coordinates inside
// cfg.Bounds.
func NewEngine(g *Graph, cfg Config) (*Engine, error) {
	n := len(g.Nodes)
	e := &Engine{
		cfg:        cfg,
		ids:        make([]ident.ID, 0, n),
		entities:   make([]*physics.Entity, 0, n),
		velocities: make([]*geom.Vector, 0, n),
		forces:     make([]*geom.Vector, 0, n),
		fixed:      make([]bool, 0, n),
		springs:    make([]*physics.Spring, 0, len(g.Edges)),
		repulsion:  physics.NewForceSystem(cfg.Force),
		attraction: physics.NewSpringSystem(cfg.Spring),
		gravity:    physics.NewCentralGravity(cfg.Bounds.Center(), cfg.CentralGravity),
		integrator: physics.NewIntegrator(cfg.Integrator),
	}

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	seen := make(map[ident.ID]struct{}, n)
	for i, node := range g.Nodes {
		if _, dup := seen[node.ID]; dup {
			return nil, fmt.Errorf("node %d (%s): %w", i, node.ID, ErrDuplicateNode)
		}
		seen[node.ID] = struct{}{}

		pos := e.seed(rng, node)
		e.ids = append(e.ids, node.ID)
		e.entities = append(e.entities, &physics.Entity{ID: node.ID, Position: pos})
		e.velocities = append(e.velocities, &geom.Vector{})
		e.forces = append(e.forces, &geom.Vector{})
		e.fixed = append(e.fixed, node.Fixed)
	}

	for i, edge := range g.Edges {
		if _, ok := seen[edge.Source]; !ok {
			return nil, fmt.Errorf("edge %d source %s: %w", i, edge.Source, ErrUnknownNode)
		}
		if _, ok := seen[edge.Target]; !ok {
			return nil, fmt.Errorf("edge %d target %s: %w", i, edge.Target, ErrUnknownNode)
		}
		e.springs = append(e.springs, &physics.Spring{From: edge.Source, To: edge.Target})
	}

	metrics.LayoutNodes.Set(float64(n))
	return e, nil
}

func (e *Engine) seed(rng *rand.Rand, node Node) geom.Vector {
	b := e.cfg.Bounds
	var pos geom.Vector
	if node.X != nil {
		pos.X = *node.X
	} else {
		pos.X = b.Position.X + rng.Float64()*b.Size.W
	}
	if node.Y != nil {
		pos.Y = *node.Y
	} else {
		pos.Y = b.Position.Y + rng.Float64()*b.Size.H
	}
	return pos
}

// Len returns the number of simulated nodes.
func (e *Engine) Len() int { return len(e.entities) }

// Steps returns how many steps have run.
func (e *Engine) Steps() int { return e.steps }

// bounds returns the region the tree is built over this step.
func (e *Engine) bounds() geom.AABB {
	if !e.cfg.FitBounds {
		return e.cfg.Bounds
	}
	points := make([]geom.Vector, 0, len(e.entities))
	for _, ent := range e.entities {
		if ent != nil {
			points = append(points, ent.Position)
		}
	}
	return geom.Fit(points, e.cfg.FitPadding)
}

// Step advances the simulation once: repulsion, springs, central gravity,
// then integration.
func (e *Engine) Step(ctx context.Context) StepStats {
	_, span := tracing.StartSpan(ctx, "layout.step")
	defer span.End()

	start := time.Now()
	bounds := e.bounds()

	rejected := e.repulsion.Update(bounds, e.entities, e.forces)
	e.attraction.Update(e.springs, e.entities, e.velocities, e.forces)
	e.gravity.Update(e.entities, e.forces)
	e.energy = e.integrator.Update(e.cfg.TimeStep, e.entities, e.velocities, e.forces, e.fixed)
	e.steps++

	stats := StepStats{
		Step:     e.steps,
		Duration: time.Since(start),
		Bounds:   bounds,
		Tree:     e.repulsion.Tree().Stats(),
		Rejected: rejected,
		Energy:   e.energy,
	}

	metrics.LayoutStepsTotal.Inc()
	metrics.LayoutStepDuration.Observe(stats.Duration.Seconds())
	metrics.LayoutKineticEnergy.Set(stats.Energy)
	metrics.QuadtreeNodes.Set(float64(stats.Tree.Nodes))
	metrics.QuadtreeDepth.Set(float64(stats.Tree.MaxDepth))
	if rejected > 0 {
		metrics.QuadtreeRejectedInserts.Add(float64(rejected))
	}

	span.SetAttributes(
		attribute.Int("layout.step", stats.Step),
		attribute.Int("layout.nodes", len(e.entities)),
		attribute.Int("quadtree.nodes", stats.Tree.Nodes),
		attribute.Int("quadtree.depth", stats.Tree.MaxDepth),
		attribute.Int("quadtree.rejected", rejected),
		attribute.Float64("layout.energy", stats.Energy),
	)
	return stats
}

// Run performs up to iterations steps and returns the final positions. It
// stops early with ctx.Err() when ctx is cancelled.
func (e *Engine) Run(ctx context.Context, iterations int) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "layout.run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("layout.nodes", len(e.entities)),
		attribute.Int("layout.springs", len(e.springs)),
		attribute.Int("layout.iterations", iterations),
	)

	log := logger.WithRun(ctx).With("component", "layout")
	progress := xrate.Sometimes{First: 1, Interval: 2 * time.Second}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			metrics.LayoutRunsTotal.WithLabelValues("cancelled").Inc()
			span.SetStatus(codes.Error, "cancelled")
			log.Warn("layout cancelled", "step", e.steps, "error", err)
			return nil, err
		}
		stats := e.Step(ctx)
		progress.Do(func() {
			log.Debug("layout progress",
				"step", stats.Step,
				"of", iterations,
				"energy", stats.Energy,
				"tree_nodes", stats.Tree.Nodes,
				"rejected", stats.Rejected)
		})
	}

	elapsed := time.Since(start)
	metrics.LayoutRunsTotal.WithLabelValues("success").Inc()
	metrics.LayoutRunDuration.Observe(elapsed.Seconds())
	log.Info("layout finished",
		"nodes", len(e.entities),
		"steps", e.steps,
		"energy", e.energy,
		"duration_ms", elapsed.Milliseconds())

	return e.Snapshot(), nil
}

// Snapshot returns the current positions in input node order.
func (e *Engine) Snapshot() *Result {
	res := &Result{
		Iterations: e.steps,
		Energy:     e.energy,
		Positions:  make([]Position, len(e.entities)),
	}
	for i, ent := range e.entities {
		res.Positions[i] = Position{ID: e.ids[i], X: ent.Position.X, Y: ent.Position.Y}
	}
	return res
}

func (e *Engine) position(id ident.ID) (geom.Vector, bool) {
	for _, ent := range e.entities {
		if ent != nil && ent.ID == id {
			return ent.Position, true
		}
	}
	return geom.Vector{}, false
}

// Query returns the ids of nodes inside area as of the last step. It is
// empty before the first step.
func (e *Engine) Query(area geom.AABB) []ident.ID {
	tree := e.repulsion.Tree()
	if tree == nil {
		return nil
	}
	return tree.Query(area)
}
