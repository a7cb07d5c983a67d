package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/courseforge/markup/internal/htmlmin"
	"github.com/courseforge/markup/pkg/markup"
	"github.com/courseforge/markup/pkg/middleware"
)

// Config holds server configuration.
type Config struct {
	// Addr is the TCP address to listen on.
	// Default: ":8080".
	Addr string

	// MaxDepth bounds element nesting plus component expansion.
	// Default: markup.DefaultMaxDepth.
	MaxDepth int

	// Minify minifies HTML responses.
	Minify bool

	// Watch mounts the live reload endpoint and injects its client script.
	Watch bool

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 10 seconds.
	ReadTimeout time.Duration

	// ReadHeaderTimeout is the maximum duration for reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	// Default: 60 seconds.
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Metrics records request and render metrics. Nil disables metrics.
	Metrics *middleware.Metrics

	// MetricsPath mounts the Prometheus handler when Metrics is set.
	// Default: "/metrics".
	MetricsPath string

	// Gatherer is exposed on MetricsPath. It should gather from the
	// registry Metrics was registered with.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Tracing creates request and render spans. Nil disables tracing.
	Tracing *middleware.Tracing

	// Minifier is used when Minify is set. Default: htmlmin.New().
	Minifier *htmlmin.Minifier
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		MaxDepth:          markup.DefaultMaxDepth,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MetricsPath:       "/metrics",
	}
}

// withDefaults fills in defaults for unset fields.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Addr == "" {
		c.Addr = defaults.Addr
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaults.MaxDepth
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaults.ReadTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaults.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.MetricsPath == "" {
		c.MetricsPath = defaults.MetricsPath
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Minify && c.Minifier == nil {
		c.Minifier = htmlmin.New()
	}
	return c
}
