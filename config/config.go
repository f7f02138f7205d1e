// Package config loads the application configuration from a JSON or YAML file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file.
type Config struct {
	ServerAddr string      `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	LLM        LLMConfig   `json:"llm" yaml:"llm"`
	Store      StoreConfig `json:"store" yaml:"store"`
	// Languages enables the reply-language hint when two or more are listed.
	Languages []string  `json:"languages,omitempty" yaml:"languages,omitempty"`
	Log       LogConfig `json:"log" yaml:"log"`
}

// LLMConfig selects the completion provider. The API key is read from the
// environment variable named by APIKeyEnv, never from the file.
type LLMConfig struct {
	Provider  string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model     string   `json:"model,omitempty" yaml:"model,omitempty"`
	APIKeyEnv string   `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	BaseURL   string   `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	MaxTokens int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Timeout   Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// MockDelay simulates thinking time for the mock provider.
	MockDelay Duration `json:"mock_delay,omitempty" yaml:"mock_delay,omitempty"`
}

type StoreConfig struct {
	Driver     string         `json:"driver,omitempty" yaml:"driver,omitempty"`
	SQLitePath string         `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	Supabase   SupabaseConfig `json:"supabase" yaml:"supabase"`
}

type SupabaseConfig struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	KeyEnv string `json:"key_env,omitempty" yaml:"key_env,omitempty"`
	Table  string `json:"table,omitempty" yaml:"table,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

var defaultAPIKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"deepseek":  "DEEPSEEK_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

var defaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"deepseek":  "deepseek-chat",
	"anthropic": "claude-3-5-sonnet-20241022",
}

// Default returns a configuration that runs offline: mock model, local SQLite.
func Default() Config {
	return Config{
		ServerAddr: ":8080",
		LLM:        LLMConfig{Provider: "mock", MaxTokens: 2048, Timeout: Duration(60 * time.Second)},
		Store:      StoreConfig{Driver: "sqlite", SQLitePath: "landing-pages.db"},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path; ".yaml"/".yml" files are YAML, anything else JSON. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "mock"
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = defaultAPIKeyEnv[c.LLM.Provider]
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "sqlite"
	}
	if c.Store.Supabase.KeyEnv == "" {
		c.Store.Supabase.KeyEnv = "SUPABASE_ANON_KEY"
	}
}

// Validate checks the settings that cannot be fixed at call time.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "mock", "openai", "deepseek", "anthropic":
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.Provider == "deepseek" && c.LLM.BaseURL == "" {
		return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
	}
	switch c.Store.Driver {
	case "sqlite":
	case "supabase":
		if c.Store.Supabase.URL == "" {
			return errors.New("store driver supabase requires supabase.url")
		}
	default:
		return fmt.Errorf("store driver %s not supported", c.Store.Driver)
	}
	return nil
}

// APIKey resolves the LLM credential from the environment; "" when unset.
func (l LLMConfig) APIKey() string {
	if l.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(l.APIKeyEnv))
}

// Key resolves the Supabase credential from the environment; "" when unset.
func (s SupabaseConfig) Key() string {
	if s.KeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(s.KeyEnv))
}

// NewLogger builds the slog logger described by LogConfig.
func (l LogConfig) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
