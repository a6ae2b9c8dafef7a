package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"digitaltwin/internal/domain"
)

// GeneratorConfig configures the completion provider. The API key is named
// by environment variable, never stored in the file.
type GeneratorConfig struct {
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// VectorIndexConfig configures the vector index connection. URL and token
// are env-named for the same reason.
type VectorIndexConfig struct {
	URLEnv      string `yaml:"url_env"`
	TokenEnv    string `yaml:"token_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// RetrievalConfig tunes the query stage.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// ProfileConfig locates the profile document for the one-time bulk load.
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// DigestConfig tunes the greeting digest.
type DigestConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Generator   GeneratorConfig   `yaml:"generator"`
	VectorIndex VectorIndexConfig `yaml:"vector_index"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Profile     ProfileConfig     `yaml:"profile"`
	Digest      DigestConfig      `yaml:"digest"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %s: %w", path, err, domain.ErrConfiguration)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %s: %w", path, err, domain.ErrConfiguration)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/digitaltwin/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RequireEnv resolves a secret named by env indirection. An unset or empty
// variable is a configuration error, fatal at startup.
func RequireEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set: %w", name, domain.ErrConfiguration)
	}
	return v, nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "digitaltwin", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "llama-3.1-8b-instant"
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.7
	}
	if cfg.Generator.MaxTokens == 0 {
		cfg.Generator.MaxTokens = 500
	}
	if cfg.Generator.TimeoutSecs == 0 {
		cfg.Generator.TimeoutSecs = 60
	}
	if cfg.VectorIndex.URLEnv == "" {
		cfg.VectorIndex.URLEnv = "UPSTASH_VECTOR_REST_URL"
	}
	if cfg.VectorIndex.TokenEnv == "" {
		cfg.VectorIndex.TokenEnv = "UPSTASH_VECTOR_REST_TOKEN"
	}
	if cfg.VectorIndex.TimeoutSecs == 0 {
		cfg.VectorIndex.TimeoutSecs = 30
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Profile.Path == "" {
		cfg.Profile.Path = "digitaltwin.json"
	}
	if cfg.Digest.MaxSentences == 0 {
		cfg.Digest.MaxSentences = 3
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
