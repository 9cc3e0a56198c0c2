/*
Package config manages the TOML config for phrasematch.
*/
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bastiangx/phrasematch/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
)

// FileName is the config file created in the config directory.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Server   ServerConfig   `toml:"server"`
	Patterns PatternsConfig `toml:"patterns"`
	CLI      CliConfig      `toml:"cli"`
}

// EngineConfig has matcher options.
type EngineConfig struct {
	// MaxRune bounds the supported alphabet, runes in [0, max_rune).
	MaxRune int `toml:"max_rune" validate:"min=1,max=65536"`
}

// ServerConfig has IPC and HTTP options.
type ServerConfig struct {
	MaxText    int    `toml:"max_text" validate:"min=1"`
	MaxResults int    `toml:"max_results" validate:"min=0"`
	CacheSize  int    `toml:"cache_size" validate:"min=0"`
	HTTPAddr   string `toml:"http_addr" validate:"omitempty,hostname_port"`
	Metrics    bool   `toml:"metrics"`
}

// PatternsConfig points at the pattern file loaded on startup.
type PatternsConfig struct {
	File  string `toml:"file"`
	Watch bool   `toml:"watch"`
}

// CliConfig holds REPL options.
type CliConfig struct {
	ShowTiming bool `toml:"show_timing"`
	Color      bool `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxRune: 128,
		},
		Server: ServerConfig{
			MaxText:    4096,
			MaxResults: 0,
			CacheSize:  1024,
			HTTPAddr:   "",
			Metrics:    true,
		},
		Patterns: PatternsConfig{
			File:  "",
			Watch: false,
		},
		CLI: CliConfig{
			ShowTiming: true,
			Color:      true,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every value against its bounds.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path: [UserConfigDir]/phrasematch/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if utils.FileExists(customPath) {
			cfg, err := LoadConfig(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return cfg, customPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customPath)
		}
	}

	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to resolve paths: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	defaultPath, err := pr.GetConfigPath(FileName)
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
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
	return LoadConfig(configPath)
}

// LoadConfig reads a TOML file over the defaults. A file that does not
// parse is recovered section by section; values out of bounds fall back to
// the defaults of their section.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		cfg = tryPartialParse(configPath)
	}
	if err := cfg.Validate(); err != nil {
		resetInvalid(cfg, err)
	}
	return cfg, nil
}

// resetInvalid restores the default section for every field that failed
// validation.
func resetInvalid(cfg *Config, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		log.Warnf("Config validation failed: %v. Using built-in defaults...", err)
		*cfg = *DefaultConfig()
		return
	}
	def := DefaultConfig()
	for _, fe := range verrs {
		// Config.Engine.MaxRune -> Engine
		parts := strings.Split(fe.StructNamespace(), ".")
		if len(parts) < 2 {
			continue
		}
		log.Warnf("Invalid config value %s=%v (%s). Using default for [%s]", fe.Field(), fe.Value(), fe.Tag(), strings.ToLower(parts[1]))
		switch parts[1] {
		case "Engine":
			cfg.Engine = def.Engine
		case "Server":
			cfg.Server = def.Server
		case "Patterns":
			cfg.Patterns = def.Patterns
		case "CLI":
			cfg.CLI = def.CLI
		}
	}
}

// tryPartialParse keeps whatever sections of a broken file still decode.
func tryPartialParse(configPath string) *Config {
	cfg := DefaultConfig()
	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg
	}
	if section, ok := utils.ExtractSection(raw, "engine"); ok {
		if val, ok := utils.ExtractInt64(section, "max_rune"); ok {
			cfg.Engine.MaxRune = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(raw, "patterns"); ok {
		if val, ok := utils.ExtractString(section, "file"); ok {
			cfg.Patterns.File = val
		}
		if val, ok := utils.ExtractBool(section, "watch"); ok {
			cfg.Patterns.Watch = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		if val, ok := utils.ExtractBool(section, "show_timing"); ok {
			cfg.CLI.ShowTiming = val
		}
		if val, ok := utils.ExtractBool(section, "color"); ok {
			cfg.CLI.Color = val
		}
	}
	return cfg
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text"); ok {
		server.MaxText = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		server.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		server.HTTPAddr = val
	}
	if val, ok := utils.ExtractBool(data, "metrics"); ok {
		server.Metrics = val
	}
}

// GetActiveConfigPath returns the absolute path of the loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	if err := utils.SaveTOMLFile(cfg, configPath); err != nil {
		return fmt.Errorf("saving config to %s: %w", configPath, err)
	}
	return nil
}
