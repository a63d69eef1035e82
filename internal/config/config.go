package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
	Round    RoundConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig controls the slog file logger.
type LogConfig struct {
	Path   string
	Level  string
	Format string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme      string
	DateFormat string `mapstructure:"date_format"`
	Locale     string
}

// RoundConfig holds defaults for new clubs and rounds.
type RoundConfig struct {
	DefaultHoles int `mapstructure:"default_holes"`
}

// Load reads configuration from file and env. Env var overrides use prefix GOLFDUEL_.
// An explicit path (from --config) wins over GOLFDUEL_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "golfduel", "golfduel.db"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "golfduel", "golfduel.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.date_format", "02 Jan 2006")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("round.default_holes", 18)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("GOLFDUEL_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "golfduel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GOLFDUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if c.UI.Theme != "light" {
		c.UI.Theme = "dark"
	}
	if c.Round.DefaultHoles != 9 {
		c.Round.DefaultHoles = 18
	}
	if strings.TrimSpace(c.UI.DateFormat) == "" {
		c.UI.DateFormat = "02 Jan 2006"
	}
}

// FilePath returns where Save writes the config.
func FilePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv("GOLFDUEL_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "golfduel", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
// The TUI uses this to persist the theme toggle.
func Save(path string, cfg Config) error {
	path = FilePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("round.default_holes", cfg.Round.DefaultHoles)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
