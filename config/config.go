package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"callstrip/layout"
	"callstrip/log"
)

const (
	ConfigFileName = "config.json"
	configDirName  = ".callstrip"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// GetConfigPath returns the full path of the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Config represents the application configuration. It is handed to the
// filmstrip engine at construction; nothing reads it ambiently.
type Config struct {
	// Layout holds every margin, border, ratio and minimum the calculators use.
	Layout layout.Params `json:"layout"`
	// MaxVisibleCount is the capacity of the visible window.
	MaxVisibleCount int `json:"max_visible_count"`
	// DefaultMode is the layout mode used when no state has been saved yet.
	DefaultMode string `json:"default_mode"`
	// EventBuffer is the capacity of the engine's event channel.
	EventBuffer int `json:"event_buffer"`
	// CellWidth and CellHeight map one terminal cell to pixels in the demo.
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Layout:          layout.DefaultParams(),
		MaxVisibleCount: 20,
		DefaultMode:     layout.ModeTile.String(),
		EventBuffer:     64,
		CellWidth:       8,
		CellHeight:      16,
	}
}

// Mode returns the parsed default mode, falling back to tile view.
func (c *Config) Mode() layout.Mode {
	m, err := layout.ParseMode(c.DefaultMode)
	if err != nil {
		log.WarningLog.Printf("config: %v, using tile", err)
		return layout.ModeTile
	}
	return m
}

// Validate reports every tunable that would make the engine misbehave.
func (c *Config) Validate() error {
	var errs []error
	p := c.Layout

	nonNegative := map[string]int{
		"layout.tile_side_margins":                    p.TileSideMargins,
		"layout.tile_vertical_chrome":                 p.TileVerticalChrome,
		"layout.tile_horizontal_margin":               p.TileHorizontalMargin,
		"layout.tile_vertical_margin":                 p.TileVerticalMargin,
		"layout.thumbnail_horizontal_border":          p.ThumbnailHorizontalBorder,
		"layout.thumbnail_vertical_border":            p.ThumbnailVerticalBorder,
		"layout.scrollbar_gutter":                     p.ScrollbarGutter,
		"layout.horizontal_strip_margin":              p.HorizontalStripMargin,
		"layout.vertical_strip_margin":                p.VerticalStripMargin,
		"layout.vertical_strip_min_horizontal_margin": p.VerticalStripMinHorizontalMargin,
		"layout.chat_width":                           p.ChatWidth,
		"max_visible_count":                           c.MaxVisibleCount,
		"event_buffer":                                c.EventBuffer,
	}
	for name, v := range nonNegative {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative (got %d)", ErrInvalidConfig, name, v))
		}
	}

	positive := map[string]int{
		"layout.tile_max_columns":     p.TileMaxColumns,
		"layout.min_thumbnail_height": p.MinThumbnailHeight,
		"layout.strip_min_size":       p.StripMinSize,
		"cell_width":                  c.CellWidth,
		"cell_height":                 c.CellHeight,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive (got %d)", ErrInvalidConfig, name, v))
		}
	}

	if p.StripMaxSize < p.StripMinSize {
		errs = append(errs, fmt.Errorf("%w: layout.strip_max_size %d is below strip_min_size %d",
			ErrInvalidConfig, p.StripMaxSize, p.StripMinSize))
	}
	ratios := map[string]float64{
		"layout.tile_aspect_ratio":   p.TileAspectRatio,
		"layout.local_aspect_ratio":  p.LocalAspectRatio,
		"layout.remote_aspect_ratio": p.RemoteAspectRatio,
	}
	for name, r := range ratios {
		if !(r > 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be positive (got %v)", ErrInvalidConfig, name, r))
		}
	}
	if !(p.VerticalStripViewportRatio > 0 && p.VerticalStripViewportRatio <= 1) {
		errs = append(errs, fmt.Errorf("%w: layout.vertical_strip_viewport_ratio must be in (0,1] (got %v)",
			ErrInvalidConfig, p.VerticalStripViewportRatio))
	}
	if _, err := layout.ParseMode(c.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// LoadConfigFrom reads and validates the config at path. Fields missing from
// the file keep their default values.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads the config from the config directory. It never fails:
// a missing file is created with defaults, and an unreadable or invalid one
// is backed up and replaced by defaults in memory.
func LoadConfig() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	cfg, err := LoadConfigFrom(configPath)
	if err == nil {
		return cfg
	}

	if errors.Is(err, os.ErrNotExist) {
		defaultCfg := DefaultConfig()
		if saveErr := SaveConfig(defaultCfg); saveErr != nil {
			log.WarningLog.Printf("failed to save default config: %v", saveErr)
		}
		return defaultCfg
	}

	log.ErrorLog.Printf("failed to load config at %s: %v", configPath, err)
	if data, readErr := os.ReadFile(configPath); readErr == nil {
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}
	}
	return DefaultConfig()
}

// SaveConfig saves the configuration to disk
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, ConfigFileName), data, 0644)
}
