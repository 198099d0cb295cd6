// Package config provides configuration loading and management for the front
// desk agent. It handles YAML config files, environment variable overrides,
// and encrypted secrets.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in LLM config.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderGoogle    = "google"
	ProviderMock      = "mock"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LLMConfig selects and tunes the language model provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Host        string  `yaml:"host"` // Ollama server URL
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// KnowledgeConfig holds knowledge base settings.
type KnowledgeConfig struct {
	// DataDir overrides the embedded knowledge files when set.
	DataDir string `yaml:"data_dir"`
}

// RetryConfig tunes LLM retry behavior.
type RetryConfig struct {
	MaxAttempts  int `yaml:"max_attempts"`
	InitialDelay int `yaml:"initial_delay_ms"`
	MaxDelay     int `yaml:"max_delay_ms"`
}

// Config is the root configuration for the front desk agent.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Database  DatabaseConfig  `yaml:"database"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Retry     RetryConfig     `yaml:"retry"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8090,
			CORSOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Provider:    ProviderAnthropic,
			MaxTokens:   1024,
			Temperature: 0.7,
		},
		Database: DatabaseConfig{
			Path: "frontdesk.db",
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 100,
			MaxDelay:     10000,
		},
	}
}

// Load reads configuration from a YAML file, applies environment overrides,
// and validates the result. An empty path uses defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets FRONTDESK_* environment variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FRONTDESK_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FRONTDESK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FRONTDESK_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("FRONTDESK_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("FRONTDESK_LLM_HOST"); v != "" {
		cfg.LLM.Host = v
	}
	if v := os.Getenv("FRONTDESK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("FRONTDESK_KNOWLEDGE_DIR"); v != "" {
		cfg.Knowledge.DataDir = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.LLM.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderOllama, ProviderGoogle, ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.LLM.Provider)
	}

	if c.LLM.Provider == ProviderOllama && c.LLM.Model == "" {
		return fmt.Errorf("ollama provider requires an explicit model")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be positive")
	}

	return nil
}

// APIKeyEnvVar returns the secret name holding the provider's API key.
func (c *Config) APIKeyEnvVar() string {
	switch c.LLM.Provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGoogle:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
