package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	// Barnes-Hut repulsion
	Theta                 float64
	GravitationalConstant float64
	// Springs along edges
	SpringStiffness  float64
	SpringRestLength float64
	SpringDamping    float64
	// Pull toward the center of the bounds
	CentralGravity float64
	// Integrator
	IntegratorDamping     float64
	IntegratorMaxVelocity float64
	TimeStep              float64
	// Simulation bounds
	BoundsX      float64
	BoundsY      float64
	BoundsWidth  float64
	BoundsHeight float64
	FitBounds    bool    // recompute bounds from positions every step
	FitPadding   float64 // fraction of the extent added on each side when fitting
	// Run control
	Iterations    int
	Seed          int64
	WatchInterval time.Duration // 0 runs once
	// Result cache
	CacheMaxMB      int64
	CacheMaxEntries int64
	CacheTTL        time.Duration
	// Observability settings
	LogLevel          string  // log level: debug, info, warn, error
	LogFormat         string  // text or json; empty picks by ENV
	MetricsTextfile   string  // optional Prometheus textfile output path
	OTELEnabled       bool    // enable OpenTelemetry tracing
	OTELEndpoint      string  // OpenTelemetry collector endpoint
	OTELSampleRate    float64 // trace sampling rate (0.0 to 1.0)
	SentryDSN         string  // Sentry DSN for error reporting
	SentryEnvironment string  // Sentry environment (dev, staging, production)
	SentryRelease     string  // Sentry release version
	SentrySampleRate  float64 // Sentry error sampling rate (0.0 to 1.0)
}

var cached *Config

// Load reads env vars once and caches them.
func Load() *Config {
	if cached != nil {
		return cached
	}
	cached = &Config{
		Theta:                 getEnvAsFloat("LAYOUT_THETA", 0.7),
		GravitationalConstant: getEnvAsFloat("LAYOUT_GRAVITY", -2000),
		SpringStiffness:       getEnvAsFloat("SPRING_STIFFNESS", 0.08),
		SpringRestLength:      getEnvAsFloat("SPRING_REST_LENGTH", 150),
		SpringDamping:         getEnvAsFloat("SPRING_DAMPING", 0.003),
		CentralGravity:        getEnvAsFloat("CENTRAL_GRAVITY", 0.2),
		IntegratorDamping:     getEnvAsFloat("INTEGRATOR_DAMPING", 0.9),
		IntegratorMaxVelocity: getEnvAsFloat("INTEGRATOR_MAX_VELOCITY", 100),
		TimeStep:              getEnvAsFloat("LAYOUT_DT", 1.0),
		// Default canvas is 1920x1080 anchored at the origin
		BoundsX:         getEnvAsFloat("LAYOUT_BOUNDS_X", 0),
		BoundsY:         getEnvAsFloat("LAYOUT_BOUNDS_Y", 0),
		BoundsWidth:     getEnvAsFloat("LAYOUT_BOUNDS_WIDTH", 1920),
		BoundsHeight:    getEnvAsFloat("LAYOUT_BOUNDS_HEIGHT", 1080),
		FitBounds:       getEnvAsBool("LAYOUT_FIT_BOUNDS", true),
		FitPadding:      getEnvAsFloat("LAYOUT_PADDING", 0.1),
		Iterations:      getEnvAsInt("LAYOUT_ITERATIONS", 400),
		Seed:            getEnvAsInt64("LAYOUT_SEED", 1),
		WatchInterval:   time.Duration(getEnvAsInt("LAYOUT_WATCH_INTERVAL_SEC", 0)) * time.Second,
		CacheMaxMB:      int64(getEnvAsInt("LAYOUT_CACHE_MAX_MB", 64)),
		CacheMaxEntries: int64(getEnvAsInt("LAYOUT_CACHE_MAX_ENTRIES", 256)),
		CacheTTL:        time.Duration(getEnvAsInt("LAYOUT_CACHE_TTL_SEC", 3600)) * time.Second,
		// Observability settings
		LogLevel:          strings.ToLower(getEnvString("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnvString("LOG_FORMAT", "")),
		MetricsTextfile:   getEnvString("METRICS_TEXTFILE", ""),
		OTELEnabled:       getEnvAsBool("OTEL_ENABLED", false),
		OTELEndpoint:      getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		OTELSampleRate:    getEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0.1),
		SentryDSN:         getEnvString("SENTRY_DSN", ""),
		SentryEnvironment: getEnvString("SENTRY_ENVIRONMENT", ""),
		SentryRelease:     getEnvString("SENTRY_RELEASE", getEnvString("SERVICE_VERSION", "dev")),
		SentrySampleRate:  getEnvAsFloat("SENTRY_SAMPLE_RATE", 1.0),
	}
	if cached.SentryEnvironment == "" {
		if env := os.Getenv("ENV"); env != "" {
			cached.SentryEnvironment = env
		} else {
			cached.SentryEnvironment = "development"
		}
	}
	if cached.Iterations < 0 {
		cached.Iterations = 0
	}

	return cached
}

// ResetForTest clears cached config; for use in tests only.
func ResetForTest() { cached = nil }
