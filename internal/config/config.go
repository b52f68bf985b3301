package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/ui"
)

const (
	DefaultDateFormat = "Monday, Jan 2"
	ProjectFileName   = ".tada.toml"
	UserFileName      = "config.toml"
)

var ErrInvalid = errors.New("invalid config")

// Config is everything tada reads from files, env and flags.
type Config struct {
	Theme           string `toml:"theme"`
	DateFormat      string `toml:"date_format"`
	DefaultCategory string `toml:"default_category"`
	Placeholder     string `toml:"placeholder"`
	HeaderImageURL  string `toml:"header_image_url"`
	NoColor         bool   `toml:"no_color"`

	Seed SeedConfig `toml:"seed"`
	Log  LogConfig  `toml:"log"`
}

type SeedConfig struct {
	File    string `toml:"file"`
	Builtin bool   `toml:"builtin"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Default() *Config {
	return &Config{
		Theme:           "classic",
		DateFormat:      DefaultDateFormat,
		DefaultCategory: model.DefaultCategory.String(),
		Placeholder:     session.DefaultPlaceholder,
		Seed:            SeedConfig{Builtin: true},
		Log:             LogConfig{Level: "info"},
	}
}

// Load layers configuration in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/tada/config.toml)
// 3. Project config file (.tada.toml in the working directory)
// 4. Explicit file (--config), which must exist
// 5. Environment variables
// Flags are applied afterwards by the caller.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if p := userConfigFile(); p != "" {
		if err := decodeIfExists(cfg, p); err != nil {
			return nil, err
		}
	}
	if err := decodeIfExists(cfg, ProjectFileName); err != nil {
		return nil, err
	}
	if explicit != "" {
		if _, err := toml.DecodeFile(explicit, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tada", UserFileName)
}

func decodeIfExists(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_SEED"); v != "" {
		cfg.Seed.File = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TADA_HEADER_IMAGE"); v != "" {
		cfg.HeaderImageURL = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	if !validTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("theme %q: want one of %s", c.Theme, strings.Join(ui.Themes, ", ")))
	}
	if _, err := model.ParseCategory(c.DefaultCategory); err != nil {
		errs = append(errs, fmt.Errorf("default_category: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.DateFormat == "" {
		errs = append(errs, errors.New("date_format: empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Category is the parsed default category; callers run Validate first.
func (c *Config) Category() model.Category {
	cat, err := model.ParseCategory(c.DefaultCategory)
	if err != nil {
		return model.DefaultCategory
	}
	return cat
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}

func validTheme(name string) bool {
	n := strings.ToLower(name)
	for _, t := range ui.Themes {
		if t == n {
			return true
		}
	}
	return false
}
