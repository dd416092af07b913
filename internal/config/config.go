// Package config loads settings from defaults, a TOML file, the
// environment and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/Makepad-fr/simpletodo/internal/logging"
	"github.com/Makepad-fr/simpletodo/internal/storage"
	"github.com/Makepad-fr/simpletodo/internal/store"
	"github.com/Makepad-fr/simpletodo/internal/ui"
)

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Driver string `toml:"driver" env:"SIMPLETODO_STORAGE_DRIVER"`
	Path   string `toml:"path" env:"SIMPLETODO_STORAGE_PATH"`
	Key    string `toml:"key" env:"SIMPLETODO_STORAGE_KEY"`
}

type LogConfig struct {
	Level string `toml:"level" env:"SIMPLETODO_LOG_LEVEL"`
	// File receives logs while the interactive view owns the terminal.
	File string `toml:"file" env:"SIMPLETODO_LOG_FILE"`
}

type UIConfig struct {
	Theme string `toml:"theme" env:"SIMPLETODO_THEME"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Storage: StorageConfig{Driver: storage.DriverFile, Key: store.DefaultKey},
		Log:     LogConfig{Level: "warn"},
		UI:      UIConfig{Theme: "classic"},
	}
}

// DefaultFile is $XDG_CONFIG_HOME/simpletodo/config.toml (or the OS
// equivalent). It returns "" when no config dir can be determined.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "simpletodo", "config.toml")
}

// Load applies defaults, then path (if it exists), then environ. A nil
// environ means the process environment. An explicit path that does not
// exist is an error; the default one is optional.
func Load(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile()
	}
	if path != "" {
		if err := loadFile(&cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	return &cfg, nil
}

func loadFile(cfg *Config, path string, explicit bool) error {
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// BindFlags registers flags that override cfg when fs is parsed.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Storage.Driver, "storage", cfg.Storage.Driver, "storage driver: "+strings.Join(storage.Drivers(), "|"))
	fs.StringVar(&cfg.Storage.Path, "data", cfg.Storage.Path, "data file or database path")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.UI.Theme, "theme", cfg.UI.Theme, "theme: "+strings.Join(ui.ThemeNames(), "|"))
}

// Validate rejects settings the app cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(storage.Drivers(), strings.ToLower(c.Storage.Driver)) {
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if strings.EqualFold(c.Storage.Driver, storage.DriverSQLite) && strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path: required for sqlite"))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage.key: must not be empty"))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if !slices.Contains(ui.ThemeNames(), strings.ToLower(c.UI.Theme)) {
		errs = append(errs, fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme))
	}
	return errors.Join(errs...)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
