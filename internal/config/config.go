package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the quiz runner.
type Config struct {
	// BankPath is the question bank JSON file.
	BankPath string `yaml:"bank"`

	// WebhookURL is the remote logging endpoint. Empty disables remote
	// reporting; events still land in the local journal.
	WebhookURL string `yaml:"webhook_url"`

	// WebhookTimeout bounds a single report request.
	WebhookTimeout time.Duration `yaml:"webhook_timeout"`

	// DBPath overrides the journal database location.
	DBPath string `yaml:"db"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BankPath:       "questions.json",
		WebhookTimeout: 10 * time.Second,
	}
}

// Load reads configuration from the given path, falling back to the
// QUIZDECK_CONFIG env var and then the XDG config location. A missing
// file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("QUIZDECK_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return applyEnv(cfg), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = Default().WebhookTimeout
	}
	return applyEnv(cfg), nil
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("QUIZDECK_BANK"); v != "" {
		cfg.BankPath = v
	}
	if v := os.Getenv("QUIZDECK_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	return cfg
}

func defaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quizdeck", "config.yaml")
}
