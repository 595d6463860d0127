package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestRun_ExplicitTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	if err := run(zap.NewNop(), "sway", path, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.Contains(string(data), "floating enable") {
		t.Errorf("expected the sway rule, got %q", data)
	}

	// Second run must not grow the file
	if err := run(zap.NewNop(), "sway", path, ""); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(again) != string(data) {
		t.Error("second run changed the config")
	}
}

func TestRun_CustomRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	custom := `for_window [app_id="nowpane"] floating enable`

	if err := run(zap.NewNop(), "sway", path, custom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != custom+"\n" {
		t.Errorf("expected custom rule only, got %q", data)
	}
}

func TestRun_UnknownWindowManager(t *testing.T) {
	if err := run(zap.NewNop(), "i3", "", ""); err == nil {
		t.Error("expected an error for an unsupported window manager")
	}
}

func TestRun_NothingDetected(t *testing.T) {
	for _, v := range []string{"HYPRLAND_INSTANCE_SIGNATURE", "SWAYSOCK", "XDG_CURRENT_DESKTOP"} {
		t.Setenv(v, "")
	}

	if err := run(zap.NewNop(), "", "", ""); err == nil {
		t.Error("expected an error when no window manager is detected")
	}
}
