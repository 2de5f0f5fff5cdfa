package buddy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicolagi/buddy/kv"
)

// Config holds the settings shared by the buddy and buddywidget programs. Both must agree on backend,
// path and key, or the widget will read a different list than the one being edited.
type Config struct {
	// Storage backend, one of kv.BackendDir, kv.BackendSQLite, kv.BackendMemory.
	Backend string `toml:"backend"`

	// State directory. The dir backend keeps its files here, the sqlite backend its database.
	Path string `toml:"path"`

	// Storage key of the task list.
	Key string `toml:"key"`

	Widget WidgetConfig `toml:"widget"`
}

type WidgetConfig struct {
	Family   string `toml:"family"`
	Interval string `toml:"interval"` // A time.ParseDuration string
}

// DefaultConfig keeps the state in lib/buddy within the user's home directory.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Backend: kv.BackendDir,
		Path:    filepath.Join(home, "lib", "buddy"),
		Key:     DefaultKey,
		Widget: WidgetConfig{
			Family:   FamilyMedium.String(),
			Interval: DefaultRefresh.String(),
		},
	}, nil
}

// DefaultConfigPath is lib/buddy/config.toml within the user's home directory.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "lib", "buddy", "config.toml"), nil
}

// LoadConfig starts from the defaults, overlays the TOML file at pathname if it exists (an empty
// pathname means DefaultConfigPath) and finally the BUDDY_BACKEND and BUDDY_PATH environment variables.
func LoadConfig(pathname string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if pathname == "" {
		if pathname, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	if _, err := toml.DecodeFile(pathname, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config %s: %w", pathname, err)
	}
	if v := os.Getenv("BUDDY_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("BUDDY_PATH"); v != "" {
		cfg.Path = v
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", pathname, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Backend {
	case kv.BackendDir, kv.BackendSQLite, kv.BackendMemory:
	default:
		return fmt.Errorf("backend %q: %w", cfg.Backend, kv.ErrUnknownBackend)
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return errors.New("empty key")
	}
	if _, err := cfg.WidgetFamily(); err != nil {
		return err
	}
	if _, err := cfg.WidgetInterval(); err != nil {
		return err
	}
	return nil
}

// StoragePath is what kv.Open expects for the configured backend.
func (cfg *Config) StoragePath() string {
	if cfg.Backend == kv.BackendSQLite {
		return filepath.Join(cfg.Path, "state.db")
	}
	return cfg.Path
}

// OpenStorage opens the configured backend.
func (cfg *Config) OpenStorage() (kv.Storage, error) {
	return kv.Open(cfg.Backend, cfg.StoragePath())
}

func (cfg *Config) WidgetFamily() (Family, error) {
	return ParseFamily(cfg.Widget.Family)
}

func (cfg *Config) WidgetInterval() (time.Duration, error) {
	if cfg.Widget.Interval == "" {
		return DefaultRefresh, nil
	}
	d, err := time.ParseDuration(cfg.Widget.Interval)
	if err != nil {
		return 0, fmt.Errorf("widget interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("widget interval %s: must be positive", d)
	}
	return d, nil
}
