package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at path, overlays secrets from the environment
// and applies defaults. A .env file next to the working directory is loaded
// first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.loadSecrets()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// loadSecrets pulls credentials from the environment. GEMINI_API_KEY accepts
// a comma-separated list so quota can be spread across several keys.
func (c *Config) loadSecrets() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, key)
			}
		}
	}
	if v := os.Getenv("STT_API_KEY"); v != "" {
		c.Transcribe.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Transcribe.APIKey = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.Password = v
	}
}
