package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the anuvad client configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Poll    PollConfig    `yaml:"poll"`
	Upload  UploadConfig  `yaml:"upload"`
	History HistoryConfig `yaml:"history"`
	Admin   AdminConfig   `yaml:"admin"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// BackendConfig holds the backend connection settings.
type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// PollConfig holds job polling settings.
type PollConfig struct {
	IntervalSec int `yaml:"interval_sec"`
}

// UploadConfig holds upload settings.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// HistoryConfig holds the local job-history store settings.
type HistoryConfig struct {
	Path string `yaml:"path"` // defaults to ~/.anuvad/history.db
}

// AdminConfig holds the admin session settings.
type AdminConfig struct {
	CredentialFile string `yaml:"credential_file"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
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

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
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
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = 30
	}
	if c.Poll.IntervalSec <= 0 {
		c.Poll.IntervalSec = 2
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = 25 << 20
	}
	if c.Admin.CredentialFile == "" {
		c.Admin.CredentialFile = defaultUserPath("credentials.yaml")
	}
	if c.History.Path == "" {
		c.History.Path = defaultUserPath("history.db")
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must be http or https, got %q", u.Scheme)
	}
	if c.Upload.MaxBytes > 25<<20 {
		return fmt.Errorf("upload.max_bytes may not exceed the 25 MB backend ceiling, got %d", c.Upload.MaxBytes)
	}
	return nil
}

// defaultUserPath places client state under ~/.anuvad.
func defaultUserPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".anuvad", name)
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
