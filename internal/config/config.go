// ABOUTME: Moodlog configuration management with backend selection.
// ABOUTME: Handles settings, analysis defaults, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/harperreed/moodlog/internal/charm"
	"github.com/harperreed/moodlog/internal/storage"
)

const (
	DefaultWindowDays   = 30
	DefaultHeatmapWeeks = 12
)

// Config stores moodlog configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts moodlog.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/moodlog.
	DataDir string `json:"data_dir,omitempty"`

	// WindowDays is the default lookback for correlations and insights.
	WindowDays int `json:"window_days,omitempty"`

	// HeatmapWeeks is the default number of weeks in a heatmap.
	HeatmapWeeks int `json:"heatmap_weeks,omitempty"`

	// WeekStart is the first day of heatmap rows, e.g. "sunday" or "monday".
	WeekStart string `json:"week_start,omitempty"`

	// Timezone is an IANA zone name for day boundaries. Empty means local time.
	Timezone string `json:"timezone,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetWindowDays returns the lookback window, defaulting to 30 days.
func (c *Config) GetWindowDays() int {
	if c.WindowDays <= 0 {
		return DefaultWindowDays
	}
	return c.WindowDays
}

// GetHeatmapWeeks returns the heatmap size, defaulting to 12 weeks.
func (c *Config) GetHeatmapWeeks() int {
	if c.HeatmapWeeks <= 0 {
		return DefaultHeatmapWeeks
	}
	return c.HeatmapWeeks
}

// GetWeekStart parses WeekStart, defaulting to Sunday.
func (c *Config) GetWeekStart() (time.Weekday, error) {
	if c.WeekStart == "" {
		return time.Sunday, nil
	}
	return ParseWeekday(c.WeekStart)
}

// GetLocation loads Timezone, defaulting to the local zone.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// EngineConfig builds the analysis engine configuration from these settings.
func (c *Config) EngineConfig() (analysis.Config, error) {
	ws, err := c.GetWeekStart()
	if err != nil {
		return analysis.Config{}, err
	}
	loc, err := c.GetLocation()
	if err != nil {
		return analysis.Config{}, err
	}
	return analysis.Config{
		Location:   loc,
		WeekStart:  ws,
		Thresholds: analysis.DefaultThresholds(),
	}, nil
}

// ParseWeekday parses a weekday name or its three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week start: %q", s)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()

	switch backend {
	case "sqlite":
		return c.OpenSQLite()
	case "charm":
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenSQLite opens the SQLite database in the data directory regardless of backend.
func (c *Config) OpenSQLite() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), storage.DBFileName))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "moodlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
