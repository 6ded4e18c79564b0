// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/logger"
	"github.com/jonathan/jdfit/internal/matching"
	"gopkg.in/yaml.v3"
)

// MaxBodyBytes caps an inbound request body. Not configurable.
const MaxBodyBytes = 1_000_000

// Defaults
const (
	DefaultPort       = 8080
	DefaultLLMTimeout = matching.DefaultTimeout
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
)

// Environment variable names
const (
	EnvAPIKey        = "GEMINI_API_KEY"
	EnvModel         = "GEMINI_MODEL"
	EnvProvider      = "LLM_PROVIDER"
	EnvPort          = "PORT"
	EnvLLMTimeout    = "LLM_TIMEOUT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvContractCheck = "CONTRACT_CHECK"
)

// Config is the process configuration, built once at startup and passed by pointer
type Config struct {
	APIKey        string
	Model         string
	Provider      llm.Provider
	Port          int
	LLMTimeout    time.Duration
	LogLevel      string
	LogFormat     string
	ContractCheck bool
	Eligibility   matching.EligibilityPolicy
}

// File is the on-disk shape of a config file (JSON or YAML). All fields are optional.
type File struct {
	APIKey        string                      `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model         string                      `json:"model,omitempty" yaml:"model,omitempty"`
	Provider      string                      `json:"provider,omitempty" yaml:"provider,omitempty"`
	Port          int                         `json:"port,omitempty" yaml:"port,omitempty"`
	LLMTimeout    string                      `json:"llm_timeout,omitempty" yaml:"llm_timeout,omitempty"` // Go duration, e.g. "45s"
	LogLevel      string                      `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat     string                      `json:"log_format,omitempty" yaml:"log_format,omitempty"`
	ContractCheck *bool                       `json:"contract_check,omitempty" yaml:"contract_check,omitempty"`
	Eligibility   *matching.EligibilityPolicy `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Model:         llm.DefaultModel,
		Provider:      llm.ProviderGemini,
		Port:          DefaultPort,
		LLMTimeout:    DefaultLLMTimeout,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		ContractCheck: true,
		Eligibility:   matching.DefaultEligibilityPolicy(),
	}
}

// Load builds the configuration from defaults, then the optional file at path, then the environment.
// A missing API key is not an error here; the server reports it per request.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.applyFile(file); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a JSON or YAML config file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &file, nil
}

func (c *Config) applyFile(f *File) error {
	if f.APIKey != "" {
		c.APIKey = f.APIKey
	}
	if f.Model != "" {
		c.Model = f.Model
	}
	if f.Provider != "" {
		p, err := llm.ParseProvider(f.Provider)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		c.Provider = p
	}
	if f.Port != 0 {
		c.Port = f.Port
	}
	if f.LLMTimeout != "" {
		d, err := time.ParseDuration(f.LLMTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'llm_timeout' is not a duration: %w", err)
		}
		c.LLMTimeout = d
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}
	if f.ContractCheck != nil {
		c.ContractCheck = *f.ContractCheck
	}
	if f.Eligibility != nil {
		c.Eligibility = f.Eligibility.MergeWithDefaults()
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIKey); ok {
		c.APIKey = v
	}
	if v, ok := get(EnvModel); ok {
		c.Model = v
	}
	if v, ok := get(EnvProvider); ok {
		p, err := llm.ParseProvider(v)
		if err != nil {
			return fmt.Errorf("config error: %s: %w", EnvProvider, err)
		}
		c.Provider = p
	}
	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v, ok := get(EnvLLMTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config error: %s is not a duration: %w", EnvLLMTimeout, err)
		}
		c.LLMTimeout = d
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.LogFormat = v
	}
	if v, ok := get(EnvContractCheck); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a boolean: %w", EnvContractCheck, err)
		}
		c.ContractCheck = b
	}
	return nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(string(c.Provider)); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.LLMTimeout < 0 {
		return fmt.Errorf("config error: 'llm_timeout' must be non-negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty, got %q", c.LogFormat)
	}
	return nil
}

// HasAPIKey reports whether an LLM credential is configured
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Addr returns the listen address for Port
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LLMConfig returns the client configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig().WithModel(c.Model)
	if c.Provider != "" {
		cfg.Provider = c.Provider
	}
	return cfg
}

// LoggerConfig returns the logger configuration
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  strings.ToLower(c.LogLevel),
		Format: strings.ToLower(c.LogFormat),
	}
}

// MatcherOptions returns the pipeline options derived from this configuration
func (c *Config) MatcherOptions() []matching.Option {
	return []matching.Option{
		matching.WithPolicy(c.Eligibility),
		matching.WithTimeout(c.LLMTimeout),
		matching.WithContractCheck(c.ContractCheck),
	}
}
