package layout

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/onnwee/forcelayout/internal/cache"
	"github.com/onnwee/forcelayout/internal/errorreporting"
	"github.com/onnwee/forcelayout/internal/logger"
	"github.com/onnwee/forcelayout/internal/metrics"
)

// Source loads the graph to lay out.
type Source func(ctx context.Context) (*Graph, error)

// Sink receives the encoded result of a run.
type Sink func(ctx context.Context, result []byte) error

// Job lays out a graph once at start and then on every tick, reusing cached
// results for graphs it has already seen.
type Job struct {
	source     Source
	sink       Sink
	cfg        Config
	iterations int
	interval   time.Duration
	cache      cache.Cache
	log        *slog.Logger
	runs       int
}

// NewJob creates a job. A nil cache disables result caching; an interval of
// zero makes Start run once and return.
func NewJob(source Source, sink Sink, cfg Config, iterations int, interval time.Duration, c cache.Cache) *Job {
	if c == nil {
		c = cache.Nop{}
	}
	return &Job{
		source:     source,
		sink:       sink,
		cfg:        cfg,
		iterations: iterations,
		interval:   interval,
		cache:      c,
		log:        logger.WithComponent("layout-job"),
	}
}

// Start runs the job until ctx is done.
func (j *Job) Start(ctx context.Context) {
	// Run immediately on start
	j.runAndReport(ctx)
	if j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runAndReport(ctx)
		}
	}
}

func (j *Job) runAndReport(ctx context.Context) {
	if err := j.RunOnce(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		j.log.Error("layout run failed", "error", err)
		errorreporting.CaptureErrorWithContext(err,
			map[string]string{"component": "layout-job"},
			map[string]interface{}{"run": j.runs})
	}
}

// RunOnce loads the graph, lays it out (or reuses a cached result) and hands
// the encoded result to the sink.
func (j *Job) RunOnce(ctx context.Context) error {
	j.runs++
	ctx = logger.ContextWithRunID(ctx, strconv.Itoa(j.runs))

	g, err := j.source(ctx)
	if err != nil {
		metrics.LayoutRunsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("load graph: %w", err)
	}

	key := j.cacheKey(g)
	if data, ok := j.cache.Get(key); ok {
		metrics.LayoutCacheHits.Inc()
		metrics.LayoutRunsTotal.WithLabelValues("cached").Inc()
		j.log.Info("layout cache hit", "run_id", j.runs, "nodes", len(g.Nodes), "key", key)
		return j.deliver(ctx, data)
	}
	metrics.LayoutCacheMisses.Inc()

	engine, err := NewEngine(g, j.cfg)
	if err != nil {
		metrics.LayoutRunsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("build engine: %w", err)
	}

	res, err := engine.Run(ctx, j.iterations)
	if err != nil {
		return fmt.Errorf("run layout: %w", err)
	}

	var buf bytes.Buffer
	if err := res.Encode(&buf); err != nil {
		return err
	}
	data := buf.Bytes()
	if !j.cache.Set(key, data) {
		j.log.Debug("layout result not cached", "key", key, "bytes", len(data))
	}
	return j.deliver(ctx, data)
}

func (j *Job) deliver(ctx context.Context, data []byte) error {
	if err := j.sink(ctx, data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// cacheKey covers the graph and every setting that changes the result.
func (j *Job) cacheKey(g *Graph) uint64 {
	d := xxhash.New()
	g.hashInto(d)
	fmt.Fprintf(d, "|%+v|%d", j.cfg, j.iterations)
	return d.Sum64()
}
