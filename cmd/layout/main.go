package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/forcelayout/internal/cache"
	"github.com/onnwee/forcelayout/internal/config"
	"github.com/onnwee/forcelayout/internal/errorreporting"
	"github.com/onnwee/forcelayout/internal/layout"
	"github.com/onnwee/forcelayout/internal/logger"
	"github.com/onnwee/forcelayout/internal/metrics"
	"github.com/onnwee/forcelayout/internal/tracing"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred shutdown always happens.
func run(args []string) int {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (falling back to system env)")
	}

	// Load configuration
	cfg := config.Load()

	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	in := fs.String("in", "-", "graph JSON file, - for stdin")
	out := fs.String("out", "-", "result JSON file, - for stdout; a .br suffix writes brotli")
	resume := fs.String("resume", "", "earlier result to start from; may be the -out file")
	iterations := fs.Int("iterations", cfg.Iterations, "simulation steps per run")
	watch := fs.Duration("watch", cfg.WatchInterval, "re-run on this interval; 0 runs once")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Initialize structured logging
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Initializing layout", "version", cfg.SentryRelease, "log_level", cfg.LogLevel)

	// Initialize error reporting
	if err := errorreporting.Init(errorreporting.Options{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		logger.Warn("Failed to initialize error reporting", "error", err)
	} else if errorreporting.IsEnabled() {
		logger.Info("Error reporting initialized", "environment", cfg.SentryEnvironment)
		defer func() {
			logger.Info("Flushing error reports...")
			errorreporting.Flush(2 * time.Second)
		}()
	}
	defer errorreporting.Recover()

	// Initialize tracing
	shutdownTracing, err := tracing.Init("forcelayout", tracing.Options{
		Enabled:    cfg.OTELEnabled,
		Endpoint:   cfg.OTELEndpoint,
		SampleRate: cfg.OTELSampleRate,
		Version:    cfg.SentryRelease,
	})
	if err != nil {
		logger.Warn("Failed to initialize tracing", "error", err)
	} else if cfg.OTELEnabled {
		logger.Info("Tracing initialized", "endpoint", cfg.OTELEndpoint, "sample_rate", cfg.OTELSampleRate)
		defer func() {
			logger.Info("Shutting down tracer...")
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	var results cache.Cache = cache.Nop{}
	if *watch > 0 && cfg.CacheMaxMB > 0 {
		lru, err := cache.NewLRU(cfg.CacheMaxMB, cfg.CacheMaxEntries, cfg.CacheTTL)
		if err != nil {
			logger.Warn("Failed to create result cache", "error", err)
		} else {
			defer lru.Close()
			results = lru
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")
		cancel()
	}()

	sink := func(ctx context.Context, data []byte) error {
		if err := writeOutput(*out, data); err != nil {
			return err
		}
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("Failed to write metrics", "path", cfg.MetricsTextfile, "error", err)
		}
		return nil
	}

	job := layout.NewJob(fileSource(*in, *resume), sink, layout.FromConfig(cfg), *iterations, *watch, results)
	if *watch <= 0 {
		if err := job.RunOnce(ctx); err != nil {
			logger.Error("Layout failed", "error", err)
			errorreporting.CaptureError(err)
			return 1
		}
		return 0
	}

	if *in == "-" {
		logger.Error("Watch mode needs an input file, not stdin")
		return 2
	}
	logger.Info("Watching graph", "input", *in, "interval", watch.String())
	job.Start(ctx)
	logger.Info("Shutting down layout")
	return 0
}
