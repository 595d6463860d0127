// Package theme loads the widget stylesheet and hot-reloads it when the
// file changes on disk.
package theme

import (
	"fmt"
	"os"
	"sync"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/gcolonna/nowpane/internal/domain"
)

// Theme holds the user-tunable presentation settings.
// Colors are hex strings; empty values fall back to the defaults.
type Theme struct {
	// UseArtPalette derives text colors from the artwork instead of the
	// fixed colors below
	UseArtPalette bool   `koanf:"use_art_palette"`
	Primary       string `koanf:"primary"`
	Secondary     string `koanf:"secondary"`
	Tertiary      string `koanf:"tertiary"`
	Background    string `koanf:"background"`
	AlbumIcon     string `koanf:"album_icon"`
}

// Default returns the built-in theme.
func Default() Theme {
	pal := domain.DefaultPalette()
	return Theme{
		UseArtPalette: true,
		Primary:       pal.Primary,
		Secondary:     pal.Secondary,
		Tertiary:      pal.Tertiary,
		Background:    "#000000",
		AlbumIcon:     "\U000F0025", // nf-md-album
	}
}

// Store owns the active theme. It loads the stylesheet once at startup
// and, when watching, re-parses it on every file change. A failed parse
// keeps the previous theme.
type Store struct {
	logger   *zap.Logger
	path     string
	provider *file.File

	mu       sync.RWMutex
	current  Theme
	onChange func(Theme)
}

// NewStore creates a theme store for the configured stylesheet path
func NewStore(logger *zap.Logger, cfg domain.Config) *Store {
	return &Store{
		logger:  logger,
		path:    cfg.ThemePath(),
		current: Default(),
	}
}

// Current returns the active theme
func (s *Store) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnChange registers the callback invoked after every successful reload
func (s *Store) OnChange(fn func(Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Load reads the stylesheet from disk. A missing file is not an error:
// the built-in defaults stay active.
func (s *Store) Load() error {
	if _, err := os.Stat(s.path); err != nil {
		s.logger.Info("No stylesheet found, using built-in theme",
			zap.String("path", s.path))
		return nil
	}

	th, err := parse(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = th
	s.mu.Unlock()

	s.logger.Info("Stylesheet loaded", zap.String("path", s.path))
	return nil
}

// Watch starts watching the stylesheet for changes. It is a no-op when
// the file does not exist at startup.
func (s *Store) Watch() error {
	if _, err := os.Stat(s.path); err != nil {
		return nil
	}

	s.provider = file.Provider(s.path)
	err := s.provider.Watch(func(event interface{}, err error) {
		if err != nil {
			s.logger.Warn("Stylesheet watch error", zap.Error(err))
			return
		}
		s.reload()
	})
	if err != nil {
		return fmt.Errorf("failed to watch stylesheet: %w", err)
	}

	s.logger.Info("Watching stylesheet", zap.String("path", s.path))
	return nil
}

// Unwatch stops the file watcher
func (s *Store) Unwatch() {
	if s.provider != nil {
		if err := s.provider.Unwatch(); err != nil {
			s.logger.Warn("Failed to stop stylesheet watcher", zap.Error(err))
		}
	}
}

// reload re-parses the stylesheet and notifies the listener.
// Parse failures keep the previous theme.
func (s *Store) reload() {
	th, err := parse(s.path)
	if err != nil {
		s.logger.Warn("Stylesheet reload failed, keeping previous theme",
			zap.String("path", s.path),
			zap.Error(err))
		return
	}

	s.mu.Lock()
	s.current = th
	fn := s.onChange
	s.mu.Unlock()

	s.logger.Info("Stylesheet reloaded", zap.String("path", s.path))

	if fn != nil {
		fn(th)
	}
}

// parse loads and validates a stylesheet file on top of the defaults
func parse(path string) (Theme, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return Theme{}, fmt.Errorf("failed to parse stylesheet: %w", err)
	}

	th := Default()
	if err := k.Unmarshal("", &th); err != nil {
		return Theme{}, fmt.Errorf("failed to unmarshal stylesheet: %w", err)
	}

	if err := th.validate(); err != nil {
		return Theme{}, err
	}
	return th, nil
}

// validate checks every color field parses as a hex color
func (t Theme) validate() error {
	fields := map[string]string{
		"primary":    t.Primary,
		"secondary":  t.Secondary,
		"tertiary":   t.Tertiary,
		"background": t.Background,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("invalid %s color %q: %w", name, value, err)
		}
	}
	return nil
}
