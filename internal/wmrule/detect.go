package wmrule

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
)

// Target describes a supported window manager: where its config lives
// and the rule line that floats the widget's terminal window.
type Target struct {
	Name       string
	ConfigPath string // relative to XDG config home
	Rule       string
}

var targets = []Target{
	{
		Name:       "hyprland",
		ConfigPath: "hypr/hyprland.conf",
		Rule:       "windowrulev2 = float, title:^(nowpane)$",
	},
	{
		Name:       "sway",
		ConfigPath: "sway/config",
		Rule:       `for_window [title="nowpane"] floating enable`,
	},
}

// DetectTarget analyzes the environment to choose the window manager to
// configure. Returns ok=false when no supported compositor is detected.
func DetectTarget(logger *zap.Logger) (Target, bool) {
	desktop := os.Getenv("XDG_CURRENT_DESKTOP")
	hyprland := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	sway := os.Getenv("SWAYSOCK")

	logger.Debug("Detecting window manager",
		zap.String("desktop", desktop),
		zap.String("hyprland", hyprland),
		zap.String("sway", sway))

	if hyprland != "" {
		return resolve("hyprland"), true
	}
	if sway != "" || strings.Contains(strings.ToLower(desktop), "sway") {
		return resolve("sway"), true
	}
	if strings.Contains(strings.ToLower(desktop), "hyprland") {
		return resolve("hyprland"), true
	}
	return Target{}, false
}

// TargetByName looks up a supported window manager by name, for the
// --wm flag. Returns ok=false for unknown names.
func TargetByName(name string) (Target, bool) {
	for _, t := range targets {
		if t.Name == strings.ToLower(name) {
			return resolve(t.Name), true
		}
	}
	return Target{}, false
}

func resolve(name string) Target {
	for _, t := range targets {
		if t.Name == name {
			t.ConfigPath = filepath.Join(xdg.ConfigHome, t.ConfigPath)
			return t
		}
	}
	return Target{}
}
