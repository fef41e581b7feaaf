package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides: UNLOCKCALC_LOGGING_LEVEL.
const EnvPrefix = "UNLOCKCALC"

// Config represents the complete plugin configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Preview PreviewConfig `mapstructure:"preview"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// LoggingConfig controls the plugin's console and file logs
type LoggingConfig struct {
	// Enabled turns the file sink on (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir holds app.log and its backups (default: "logs", relative to the working directory)
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated backups (default: false)
	Compress bool `mapstructure:"compress"`
	// Daily starts a new app.log each local day (default: true)
	Daily bool `mapstructure:"daily"`
	// Console mirrors every record to stderr with a "[Plugin] " prefix (default: true)
	Console bool `mapstructure:"console"`
}

// PreviewConfig controls the terminal preview host
type PreviewConfig struct {
	// Target is the render target the preview asks the plugin to draw into (default: "root")
	Target string `mapstructure:"target"`
	// Theme is the preview color theme (default: "default")
	Theme string `mapstructure:"theme"`
}

// ServeConfig controls the stdio host binding
type ServeConfig struct {
	// RenderTarget, when set, is rendered once right after on_load so the host
	// receives a tree without asking (default: "", wait for on_ui_render)
	RenderTarget string `mapstructure:"render_target"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "logs",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
			Daily:      true,
			Console:    true,
		},
		Preview: PreviewConfig{
			Target: "root",
			Theme:  "default",
		},
		Serve: ServeConfig{},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	for key, value := range DefaultValues() {
		viper.SetDefault(key, value)
	}
}

// DefaultValues returns the default value of every key in Keys.
func DefaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"logging.enabled":     d.Logging.Enabled,
		"logging.level":       d.Logging.Level,
		"logging.dir":         d.Logging.Dir,
		"logging.max_size_mb": d.Logging.MaxSizeMB,
		"logging.max_backups": d.Logging.MaxBackups,
		"logging.compress":    d.Logging.Compress,
		"logging.daily":       d.Logging.Daily,
		"logging.console":     d.Logging.Console,
		"preview.target":      d.Preview.Target,
		"preview.theme":       d.Preview.Theme,
		"serve.render_target": d.Serve.RenderTarget,
	}
}

// Keys returns every configuration key in display order.
func Keys() []string {
	return []string{
		"logging.enabled",
		"logging.level",
		"logging.dir",
		"logging.max_size_mb",
		"logging.max_backups",
		"logging.compress",
		"logging.daily",
		"logging.console",
		"preview.target",
		"preview.theme",
		"serve.render_target",
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "unlockcalc")
	}
	// Fall back to ~/.config/unlockcalc
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unlockcalc"
	}
	return filepath.Join(home, ".config", "unlockcalc")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
