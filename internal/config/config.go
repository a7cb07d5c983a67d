package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/courseforge/markup/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "markup.yaml"

	// DefaultAddr is the default server listen address.
	DefaultAddr = ":8080"

	// DefaultPagesDir is the default page directory.
	DefaultPagesDir = "pages"

	// DefaultTimeout is the default server read and write timeout.
	DefaultTimeout = "10s"

	// DefaultMaxDepth is the default render depth bound.
	DefaultMaxDepth = 512

	// DefaultNamespace is the default Prometheus namespace and tracer name.
	DefaultNamespace = "markup"

	// DefaultMetricsPath is the default metrics endpoint.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete markup.yaml configuration.
type Config struct {
	// Render contains renderer settings.
	Render RenderConfig `yaml:"render"`

	// Server contains HTTP page server settings.
	Server ServerConfig `yaml:"server"`

	// S3 selects an S3 bucket as the page store when Bucket is set.
	S3 S3Config `yaml:"s3"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `yaml:"tracing"`

	// Log contains process logger settings.
	Log LogConfig `yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// MaxDepth bounds element nesting plus component expansion.
	MaxDepth int `yaml:"maxDepth"`

	// Minify minifies HTML output.
	Minify bool `yaml:"minify"`
}

// ServerConfig contains HTTP page server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`

	// Pages is the page directory, relative to the config file.
	Pages string `yaml:"pages"`

	// Watch enables live reload when page files change.
	Watch bool `yaml:"watch"`

	// ReadTimeout is the HTTP read timeout (e.g., "10s").
	ReadTimeout string `yaml:"readTimeout"`

	// WriteTimeout is the HTTP write timeout (e.g., "10s").
	WriteTimeout string `yaml:"writeTimeout"`
}

// S3Config contains S3 page store settings.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TracerName string `yaml:"tracerName"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Default creates a new Config with default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			Pages:        DefaultPagesDir,
			ReadTimeout:  DefaultTimeout,
			WriteTimeout: DefaultTimeout,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.configPath = path
			return cfg, nil
		}
		return nil, errors.New(errors.CodeConfigRead).WithDetail(path).Wrap(err)
	}

	cfg, perr := parse(data)
	if perr != nil {
		return nil, perr.WithDetail("Failed to parse " + path)
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes configuration from YAML or JSON and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte) (*Config, *errors.Error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigRead).
			WithSuggestion("Check that " + ConfigFileName + " is valid YAML").
			Wrap(err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigWrite).WithDetail(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = DefaultMaxDepth
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Pages == "" {
		c.Server.Pages = DefaultPagesDir
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultTimeout
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Render.MaxDepth < 0 {
		return invalid("render.maxDepth must not be negative, got " + strconv.Itoa(c.Render.MaxDepth))
	}
	if c.Server.Addr == "" {
		return invalid("server.addr must not be empty")
	}
	for _, t := range []struct{ name, value string }{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
	} {
		if d, err := time.ParseDuration(t.value); err != nil || d < 0 {
			return invalid(t.name + " must be a duration such as \"10s\", got " + strconv.Quote(t.value))
		}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with '/', got " + strconv.Quote(c.Metrics.Path))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	return nil
}

func invalid(detail string) *errors.Error {
	return errors.New(errors.CodeConfigInvalid).WithDetail(detail)
}

// ReadTimeoutDuration returns the parsed read timeout.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return parseDuration(s.ReadTimeout)
}

// WriteTimeoutDuration returns the parsed write timeout.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return parseDuration(s.WriteTimeout)
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// PagesPath returns the absolute path to the page directory.
func (c *Config) PagesPath() string {
	path := c.Server.Pages
	if path == "" {
		path = DefaultPagesDir
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// UsesS3 returns true if pages are served from S3.
func (c *Config) UsesS3() bool {
	return c.S3.Bucket != ""
}
