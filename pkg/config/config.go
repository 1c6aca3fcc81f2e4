/*
Package config manages the TOML config for wordlearn.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordlearn/internal/utils"
	"github.com/bastiangx/wordlearn/pkg/store"
	"github.com/charmbracelet/log"
)

const appDir = "wordlearn"

// Config holds the entire config structure
type Config struct {
	Trainer TrainerConfig `toml:"trainer"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// TrainerConfig selects tokenization and storage.
type TrainerConfig struct {
	Punctuation string `toml:"punctuation"`
	Store       string `toml:"store"`
}

// ServerConfig has IPC server limits.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MaxPrefix int `toml:"max_prefix"`
}

// CliConfig holds cli defaults.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	DefaultMinLen int `toml:"default_min_len"`
	DefaultMaxLen int `toml:"default_max_len"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Trainer: TrainerConfig{
			Punctuation: utils.StripPunctuation.String(),
			Store:       string(store.KindTrie),
		},
		Server: ServerConfig{
			MaxLimit:  64,
			MaxPrefix: 60,
		},
		CLI: CliConfig{
			DefaultLimit:  24,
			DefaultMinLen: 1,
			DefaultMaxLen: 24,
		},
	}
}

// Validate checks enum values and numeric bounds
func (c *Config) Validate() error {
	if _, err := utils.ParsePunctuationMode(c.Trainer.Punctuation); err != nil {
		return err
	}
	switch store.Kind(c.Trainer.Store) {
	case store.KindTrie, store.KindPatricia:
	default:
		return fmt.Errorf("unknown store %q (expected trie or patricia)", c.Trainer.Store)
	}
	if c.Server.MaxLimit < 1 {
		return fmt.Errorf("server.max_limit must be positive, got %d", c.Server.MaxLimit)
	}
	if c.Server.MaxPrefix < 1 {
		return fmt.Errorf("server.max_prefix must be positive, got %d", c.Server.MaxPrefix)
	}
	if c.CLI.DefaultLimit < 1 {
		return fmt.Errorf("cli.default_limit must be positive, got %d", c.CLI.DefaultLimit)
	}
	if c.CLI.DefaultMinLen > c.CLI.DefaultMaxLen {
		return fmt.Errorf("cli.default_min_len (%d) exceeds cli.default_max_len (%d)",
			c.CLI.DefaultMinLen, c.CLI.DefaultMaxLen)
	}
	return nil
}

// PunctuationMode returns the parsed trainer.punctuation value
func (c *Config) PunctuationMode() utils.PunctuationMode {
	mode, err := utils.ParsePunctuationMode(c.Trainer.Punctuation)
	if err != nil {
		log.Warnf("%v. Using strip...", err)
	}
	return mode
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordlearn
// 2. ~/Library/Application Support/wordlearn (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	candidates := []string{
		filepath.Join(homeDir, ".config", appDir),
		filepath.Join(homeDir, "Library", "Application Support", appDir),
	}
	for _, dir := range candidates {
		if result := utils.CheckDirStatus(dir); result.Writable {
			return dir, nil
		}
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordlearn/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if !utils.FileExists(customPath) {
			return nil, "", fmt.Errorf("config file not found at %s", customPath)
		}
		cfg, err := LoadConfig(customPath)
		if err != nil {
			return nil, "", err
		}
		log.Debugf("Loaded config from custom path: %s", customPath)
		return cfg, customPath, nil
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		return nil, "", err
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates a default one if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to write default config to %s: %v. Using built-in defaults...", configPath, err)
			return cfg, nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, salvaging valid keys when strict
// decoding fails. Values that decode but do not validate are an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		cfg = tryPartialParse(configPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// tryPartialParse applies whatever keys type-check on top of the defaults
func tryPartialParse(configPath string) *Config {
	cfg := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg
	}

	if section, ok := utils.ExtractSection(raw, "trainer"); ok {
		if val, ok := utils.ExtractString(section, "punctuation"); ok {
			cfg.Trainer.Punctuation = val
		}
		if val, ok := utils.ExtractString(section, "store"); ok {
			cfg.Trainer.Store = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		if val, ok := utils.ExtractInt(section, "max_limit"); ok {
			cfg.Server.MaxLimit = val
		}
		if val, ok := utils.ExtractInt(section, "max_prefix"); ok {
			cfg.Server.MaxPrefix = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		if val, ok := utils.ExtractInt(section, "default_limit"); ok {
			cfg.CLI.DefaultLimit = val
		}
		if val, ok := utils.ExtractInt(section, "default_min_len"); ok {
			cfg.CLI.DefaultMinLen = val
		}
		if val, ok := utils.ExtractInt(section, "default_max_len"); ok {
			cfg.CLI.DefaultMaxLen = val
		}
	}
	return cfg
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}
