// Package config loads application settings from an optional YAML file with
// environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "FORUMBOT_CONFIG"
	databasePathEnv   = "FORUMBOT_DB"
	cohereAPIKeyEnv   = "COHERE_API_KEY"
	googleAPIKeyEnv   = "GOOGLE_API_KEY"
	googleModelEnv    = "GOOGLE_MODEL"
	externalAPIKeyEnv = "EXTERNAL_API_KEY"
	externalAPIURLEnv = "EXTERNAL_API_URL"
	marketauxTokenEnv = "MARKETAUX_API_TOKEN"
)

// Config holds settings required across the application.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Personas  PersonaConfig   `yaml:"personas"`
	Topics    TopicConfig     `yaml:"topics"`
	Cohere    CohereConfig    `yaml:"cohere"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Publish   PublishConfig   `yaml:"publish"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Logging   LoggingConfig   `yaml:"logging"`
	OutputDir string          `yaml:"outputDir"`
}

// DatabaseConfig describes the cache database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PersonaConfig points at the persona file.
type PersonaConfig struct {
	Path string `yaml:"path"`
}

// TopicConfig points at the topic vocabulary file.
type TopicConfig struct {
	Path string `yaml:"path"`
}

// CohereConfig defines how to contact the post-generation backend.
type CohereConfig struct {
	Endpoint string  `yaml:"endpoint"`
	Model    string  `yaml:"model"`
	APIKey   string  `yaml:"apiKey"`
	Temp     float64 `yaml:"temperature"`
}

// GeminiConfig defines how to contact the reply-generation backend.
type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"apiKey"`
}

// PublishConfig wires the downstream forum API.
type PublishConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// DiscoveryConfig wires the news-search API and optional source feeds.
type DiscoveryConfig struct {
	MarketauxToken string   `yaml:"marketauxToken"`
	Limit          int      `yaml:"limit"`
	FeedURLs       []string `yaml:"feedUrls"`
}

// LoggingConfig controls the shared logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	cfg := defaultConfig()

	path := os.Getenv(configPathEnv)
	if path == "" {
		path = "forumbot.yaml"
	}

	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(cohereAPIKeyEnv); v != "" {
		c.Cohere.APIKey = v
	}
	if v := os.Getenv(googleAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv(googleModelEnv); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv(externalAPIKeyEnv); v != "" {
		c.Publish.APIKey = v
	}
	if v := os.Getenv(externalAPIURLEnv); v != "" {
		c.Publish.BaseURL = v
	}
	if v := os.Getenv(marketauxTokenEnv); v != "" {
		c.Discovery.MarketauxToken = v
	}
}

func defaultConfig() *Config {
	return &Config{
		Database:  DatabaseConfig{Path: "forumbot.db"},
		Personas:  PersonaConfig{Path: "personas.yaml"},
		Topics:    TopicConfig{Path: "topics.yaml"},
		Cohere:    CohereConfig{Model: "command-r", Temp: 0.8},
		Gemini:    GeminiConfig{Model: "gemini-1.5-flash-latest"},
		Publish:   PublishConfig{BaseURL: "https://www.tickertalk.in"},
		Discovery: DiscoveryConfig{Limit: 10},
		Logging:   LoggingConfig{Level: "info"},
		OutputDir: "outputs",
	}
}
