package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
)

const (
	defaultInterval  = time.Second
	defaultBinary    = "playerctl"
	defaultCoverSize = 640
)

// AppConfig holds the widget's runtime knobs, read from NOWPANE_*
// environment variables with sensible defaults.
type AppConfig struct {
	logger    *zap.Logger
	interval  time.Duration
	binary    string
	player    string
	coverSize int
	bgWidth   int
	bgHeight  int
	themePath string
	logPath   string
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	cfg := &AppConfig{
		logger:    logger,
		interval:  defaultInterval,
		binary:    defaultBinary,
		coverSize: defaultCoverSize,
		themePath: filepath.Join(xdg.ConfigHome, "nowpane", "theme.toml"),
		logPath:   LogPath(),
	}

	if v := os.Getenv("NOWPANE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.interval = d
		} else {
			logger.Warn("Invalid NOWPANE_INTERVAL, using default", zap.String("value", v))
		}
	}

	if v := os.Getenv("NOWPANE_PLAYERCTL"); v != "" {
		cfg.binary = v
	}
	cfg.player = os.Getenv("NOWPANE_PLAYER")

	if v := os.Getenv("NOWPANE_COVER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.coverSize = n
		} else {
			logger.Warn("Invalid NOWPANE_COVER_SIZE, using default", zap.String("value", v))
		}
	}

	if v := os.Getenv("NOWPANE_BACKGROUND"); v != "" {
		if w, h, ok := parseSize(v); ok {
			cfg.bgWidth, cfg.bgHeight = w, h
		} else {
			logger.Warn("Invalid NOWPANE_BACKGROUND, autodetecting", zap.String("value", v))
		}
	}

	if v := os.Getenv("NOWPANE_THEME"); v != "" {
		cfg.themePath = expandPath(v)
	}

	logger.Info("Configuration loaded",
		zap.Duration("interval", cfg.interval),
		zap.String("binary", cfg.binary),
		zap.String("player", cfg.player),
		zap.Int("coverSize", cfg.coverSize),
		zap.String("themePath", cfg.themePath))

	return cfg
}

// RefreshInterval is the poll period of the refresh cycle
func (c *AppConfig) RefreshInterval() time.Duration {
	return c.interval
}

// PlayerCommand returns the metadata tool binary and optional player name
func (c *AppConfig) PlayerCommand() (string, string) {
	return c.binary, c.player
}

// CoverSize is the pixel edge of the generated square cover
func (c *AppConfig) CoverSize() int {
	return c.coverSize
}

// BackgroundSize is the configured background size, zero when autodetecting
func (c *AppConfig) BackgroundSize() (int, int) {
	return c.bgWidth, c.bgHeight
}

// ThemePath is the stylesheet file watched for changes
func (c *AppConfig) ThemePath() string {
	return c.themePath
}

// LogPath is where the file-backed logger writes.
// Stdout belongs to the terminal UI.
func (c *AppConfig) LogPath() string {
	return c.logPath
}

// LogPath resolves the log file location. It is a package function
// rather than a method because the logger has to exist before the rest
// of the configuration can be loaded.
func LogPath() string {
	if v := os.Getenv("NOWPANE_LOG"); v != "" {
		return expandPath(v)
	}
	return filepath.Join(xdg.CacheHome, "nowpane", "nowpane.log")
}

// parseSize parses "1920x1080" style dimensions
func parseSize(s string) (int, int, bool) {
	ws, hs, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// expandPath resolves a leading ~ and environment variables
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
