package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/phanxgames/courtboard"
)

// Config holds the start-up settings of the courtboard command.
type Config struct {
	PlaybookDir  string        `env:"COURTBOARD_PLAYBOOK_DIR"`
	ExportDir    string        `env:"COURTBOARD_EXPORT_DIR"     envDefault:"exports"`
	Catalog      string        `env:"COURTBOARD_CATALOG"        envDefault:"singles"`
	Script       string        `env:"COURTBOARD_SCRIPT"`
	Debug        bool          `env:"COURTBOARD_DEBUG"`
	LogLevel     string        `env:"COURTBOARD_LOG_LEVEL"      envDefault:"info"`
	Abandon      string        `env:"COURTBOARD_ABANDON"        envDefault:"commit"`
	DragDeadZone float64       `env:"COURTBOARD_DRAG_DEAD_ZONE" envDefault:"2"`
	ResetTween   time.Duration `env:"COURTBOARD_RESET_TWEEN"    envDefault:"250ms"`
	EventJournal bool          `env:"COURTBOARD_EVENT_JOURNAL"`
	Title        string        `env:"COURTBOARD_TITLE"          envDefault:"Tennis Tactics"`
	ShowFPS      bool          `env:"COURTBOARD_SHOW_FPS"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Settings are the typed values derived from a Config.
type Settings struct {
	Catalog  courtboard.Catalog
	Abandon  courtboard.AbandonPolicy
	LogLevel slog.Level
}

// Resolve validates the string settings and converts them.
func (c Config) Resolve() (Settings, error) {
	var s Settings
	var err error
	if s.Catalog, err = courtboard.ParseCatalog(c.Catalog); err != nil {
		return Settings{}, fmt.Errorf("catalog: %w", err)
	}
	if s.Abandon, err = courtboard.ParseAbandonPolicy(c.Abandon); err != nil {
		return Settings{}, fmt.Errorf("abandon policy: %w", err)
	}
	if err := s.LogLevel.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return Settings{}, fmt.Errorf("log level: %w", err)
	}
	if c.Debug && s.LogLevel > slog.LevelDebug {
		s.LogLevel = slog.LevelDebug
	}
	if c.DragDeadZone < 0 {
		return Settings{}, fmt.Errorf("drag dead zone: must not be negative, got %v", c.DragDeadZone)
	}
	if c.ResetTween < 0 {
		return Settings{}, fmt.Errorf("reset tween: must not be negative, got %v", c.ResetTween)
	}
	return s, nil
}
