package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig(zap.NewNop())

	if cfg.RefreshInterval() != time.Second {
		t.Errorf("expected 1s interval, got %v", cfg.RefreshInterval())
	}

	binary, player := cfg.PlayerCommand()
	if binary != "playerctl" {
		t.Errorf("expected playerctl binary, got %q", binary)
	}
	if player != "" {
		t.Errorf("expected no player restriction, got %q", player)
	}

	if cfg.CoverSize() != 640 {
		t.Errorf("expected cover size 640, got %d", cfg.CoverSize())
	}

	if w, h := cfg.BackgroundSize(); w != 0 || h != 0 {
		t.Errorf("expected autodetect background (0x0), got %dx%d", w, h)
	}

	if cfg.ThemePath() == "" || cfg.LogPath() == "" {
		t.Error("expected non-empty default paths")
	}
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("NOWPANE_INTERVAL", "5s")
	t.Setenv("NOWPANE_PLAYERCTL", "/usr/local/bin/playerctl")
	t.Setenv("NOWPANE_PLAYER", "spotify")
	t.Setenv("NOWPANE_COVER_SIZE", "800")
	t.Setenv("NOWPANE_BACKGROUND", "2560x1440")
	t.Setenv("NOWPANE_THEME", "/etc/nowpane/theme.toml")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.RefreshInterval() != 5*time.Second {
		t.Errorf("expected 5s interval, got %v", cfg.RefreshInterval())
	}

	binary, player := cfg.PlayerCommand()
	if binary != "/usr/local/bin/playerctl" || player != "spotify" {
		t.Errorf("unexpected player command: %q / %q", binary, player)
	}

	if cfg.CoverSize() != 800 {
		t.Errorf("expected cover size 800, got %d", cfg.CoverSize())
	}

	if w, h := cfg.BackgroundSize(); w != 2560 || h != 1440 {
		t.Errorf("expected 2560x1440, got %dx%d", w, h)
	}

	if cfg.ThemePath() != "/etc/nowpane/theme.toml" {
		t.Errorf("unexpected theme path: %q", cfg.ThemePath())
	}
}

func TestNewAppConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("NOWPANE_INTERVAL", "soon")
	t.Setenv("NOWPANE_COVER_SIZE", "-3")
	t.Setenv("NOWPANE_BACKGROUND", "huge")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.RefreshInterval() != time.Second {
		t.Errorf("expected default interval, got %v", cfg.RefreshInterval())
	}
	if cfg.CoverSize() != 640 {
		t.Errorf("expected default cover size, got %d", cfg.CoverSize())
	}
	if w, h := cfg.BackgroundSize(); w != 0 || h != 0 {
		t.Errorf("expected autodetect, got %dx%d", w, h)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		w, h  int
		ok    bool
	}{
		{"1920x1080", 1920, 1080, true},
		{"1920X1080", 1920, 1080, true},
		{" 800 x 600 ", 800, 600, true},
		{"1920", 0, 0, false},
		{"x1080", 0, 0, false},
		{"0x100", 0, 0, false},
		{"axb", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w, h, ok := parseSize(tt.input)
			if w != tt.w || h != tt.h || ok != tt.ok {
				t.Errorf("parseSize(%q) = (%d, %d, %v), want (%d, %d, %v)",
					tt.input, w, h, ok, tt.w, tt.h, tt.ok)
			}
		})
	}
}
