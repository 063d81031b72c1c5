/*
Package config manages the TOML configuration for replyserve.
*/
package config

import (
	"fmt"
	"path/filepath"

	"github.com/bastiangx/replyserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Model  ModelConfig  `toml:"model"`
	Server ServerConfig `toml:"server"`
	Build  BuildConfig  `toml:"build"`
}

// ModelConfig carries the two trie scalars. They are fixed at build time; a
// loaded model keeps the values it was built with regardless of this file.
type ModelConfig struct {
	MaxSuggestions  int `toml:"max_suggestions"`
	MinWordsPartial int `toml:"min_words_partial"`
}

// ServerConfig has HTTP serving options.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxPrefix    int    `toml:"max_prefix"`
	DefaultLimit int    `toml:"default_limit"`
}

// BuildConfig has offline build pipeline paths.
type BuildConfig struct {
	CorpusPath string `toml:"corpus_path"`
	ModelPath  string `toml:"model_path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			MaxSuggestions:  3,
			MinWordsPartial: 4,
		},
		Server: ServerConfig{
			Addr:         ":13000",
			MaxPrefix:    200,
			DefaultLimit: 3,
		},
		Build: BuildConfig{
			CorpusPath: "data/conversations.json",
			ModelPath:  "data/model.rstm",
		},
	}
}

// InitConfig loads config from file or creates it with defaults if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}
	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}
