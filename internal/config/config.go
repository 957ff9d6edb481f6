// ABOUTME: Client configuration loading from a TOML file under the XDG config dir
// ABOUTME: Supports ${ENV} expansion, duration parsing, and defaults validation

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete client configuration.
type Config struct {
	Gateway GatewayConfig `toml:"gateway"`
	State   StateConfig   `toml:"state"`
	Routes  RoutesConfig  `toml:"routes"`
	Logging LoggingConfig `toml:"logging"`
}

// GatewayConfig points the client at the platform API.
type GatewayConfig struct {
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"-"`

	// Raw string value for TOML unmarshaling
	TimeoutRaw string `toml:"timeout"`
}

// StateConfig locates the durable session store.
type StateConfig struct {
	Path string `toml:"path"`
}

// RoutesConfig optionally overrides the embedded route table.
type RoutesConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultPath returns the standard config file location,
// $XDG_CONFIG_HOME/starticket/config.toml.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determining config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "starticket", "config.toml"), nil
}

// Load reads config from the given path, expanding environment variables.
// A missing file yields the defaults: the client works out of the box
// against a local gateway.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables (${VAR} syntax)
	expanded := expandEnvVars(string(data))

	if _, err := toml.Decode(expanded, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// StatePath resolves the session store location, defaulting to
// $XDG_DATA_HOME/starticket/state.db.
func (c *Config) StatePath() (string, error) {
	if c.State.Path != "" {
		return c.State.Path, nil
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determining data directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "starticket", "state.db"), nil
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// parseDurations converts raw duration strings into time.Duration values.
func (c *Config) parseDurations() error {
	if c.Gateway.TimeoutRaw != "" {
		d, err := time.ParseDuration(c.Gateway.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing gateway.timeout %q: %w", c.Gateway.TimeoutRaw, err)
		}
		c.Gateway.Timeout = d
	}
	if c.Gateway.Timeout <= 0 {
		c.Gateway.Timeout = 10 * time.Second
	}
	return nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Gateway.URL == "" {
		return fmt.Errorf("gateway.url is required")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
