// Package config loads the application configuration from an optional YAML
// file plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pagemark/pkg/ai"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir         string `yaml:"dataDir"`
	LogLevel        string `yaml:"logLevel"`
	GeminiAPIKey    string `yaml:"geminiApiKey"`
	GeminiModel     string `yaml:"geminiModel"`
	NetworkProbeURL string `yaml:"networkProbeURL"`
}

// Load reads config from path when it exists, then applies env overrides
// and defaults. path may be blank: everything has a usable default.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("PAGEMARK_DATA_DIR"); v != "" {
		cfg.DataDir = strings.TrimSpace(v)
	}
	if v := os.Getenv("PAGEMARK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("PAGEMARK_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = strings.TrimSpace(v)
	}
	if v := os.Getenv("PAGEMARK_PROBE_URL"); v != "" {
		cfg.NetworkProbeURL = strings.TrimSpace(v)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".pagemark")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = ai.DefaultGeminiModel
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.DataDir == "" {
		return errors.New("config: dataDir is required (set in config.yaml or PAGEMARK_DATA_DIR)")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown logLevel %q", cfg.LogLevel)
	}
	return nil
}
