package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the CLI looks for its config file.
const DefaultConfigPath = ".coach/config.yaml"

// Config holds all coach configuration.
type Config struct {
	// Recommendation service
	Service ServiceConfig `yaml:"service"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Tracing
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServiceConfig configures the recommendation service client.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, dark, light
}

// TelemetryConfig configures OpenTelemetry export. An empty endpoint
// disables tracing export.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// envOverrides lists the environment variables that take precedence over
// the config file. Empty values leave the file setting alone.
type envOverrides struct {
	BaseURL      string `env:"COACH_API_BASE_URL"`
	Timeout      string `env:"COACH_API_TIMEOUT"`
	LogLevel     string `env:"COACH_LOG_LEVEL"`
	Theme        string `env:"COACH_THEME"`
	OTelEndpoint string `env:"COACH_OTEL_ENDPOINT"`
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			File:    ".coach/coach.log",
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "playcoach",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// YAML returns the configuration as a YAML document.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.BaseURL != "" {
		c.Service.BaseURL = o.BaseURL
	}
	if o.Timeout != "" {
		c.Service.Timeout = o.Timeout
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.Theme != "" {
		c.UI.Theme = o.Theme
	}
	if o.OTelEndpoint != "" {
		c.Telemetry.Endpoint = o.OTelEndpoint
	}
	return nil
}

// GetServiceTimeout returns the service timeout as a duration.
func (c *Config) GetServiceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid service base_url %q: %w", c.Service.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid service base_url %q: must be an absolute http(s) URL", c.Service.BaseURL)
	}

	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil {
		return fmt.Errorf("invalid service timeout %q: %w", c.Service.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid service timeout %q: must be positive", c.Service.Timeout)
	}

	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}
