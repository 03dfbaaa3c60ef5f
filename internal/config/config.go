package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/bookdex/internal/db"
)

// Config holds the bookdex configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Index    IndexConfig    `yaml:"index"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings for the serve command.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds connection settings for the search engine.
type DatabaseConfig struct {
	Addrs             []string `yaml:"addrs"`
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	DB                int      `yaml:"db"`
	DialTimeoutSec    int      `yaml:"dial_timeout_sec"`
	RequestTimeoutSec int      `yaml:"request_timeout_sec"`
	ReadinessTimeout  int      `yaml:"readiness_timeout_sec"`
}

// DialTimeout returns the connect timeout.
func (d DatabaseConfig) DialTimeout() time.Duration {
	return time.Duration(d.DialTimeoutSec) * time.Second
}

// RequestTimeout bounds a single CLI operation.
func (d DatabaseConfig) RequestTimeout() time.Duration {
	return time.Duration(d.RequestTimeoutSec) * time.Second
}

// IndexConfig names the full-text index.
type IndexConfig struct {
	Name string `yaml:"name"`
}

// MetricsConfig holds Pushgateway settings for one-shot commands.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"` // empty disables push
	Job            string `yaml:"job"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a validated configuration with no file behind it.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.Database.Addrs) == 0 {
		c.Database.Addrs = []string{"127.0.0.1:6379"}
	}
	if c.Database.DialTimeoutSec <= 0 {
		c.Database.DialTimeoutSec = 5
	}
	if c.Database.RequestTimeoutSec <= 0 {
		c.Database.RequestTimeoutSec = 30
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Index.Name == "" {
		c.Index.Name = "idx-books"
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "bookdex"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	for i, a := range c.Database.Addrs {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("database.addrs[%d] is empty", i)
		}
	}
	if c.Database.DB < 0 {
		return fmt.Errorf("database.db must not be negative, got %d", c.Database.DB)
	}
	if !db.IsValidIdentifier(c.Index.Name) {
		return fmt.Errorf("index.name must match [a-zA-Z0-9_:-]+, got %q", c.Index.Name)
	}
	if c.Metrics.PushgatewayURL != "" &&
		!strings.HasPrefix(c.Metrics.PushgatewayURL, "http://") &&
		!strings.HasPrefix(c.Metrics.PushgatewayURL, "https://") {
		return fmt.Errorf("metrics.pushgateway_url must be an http(s) URL, got %q", c.Metrics.PushgatewayURL)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
