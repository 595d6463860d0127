// Command nowpane-rule installs the window-placement rule that keeps
// the widget's terminal floating. Run it once per machine; re-running
// is harmless.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gcolonna/nowpane/internal/wmrule"
)

func main() {
	var (
		wmName     = flag.String("wm", "", "window manager to configure (hyprland, sway); autodetected when empty")
		configPath = flag.String("config", "", "config file to modify; overrides the detected default")
		rule       = flag.String("rule", "", "rule line to insert; overrides the detected default")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *wmName, *configPath, *rule); err != nil {
		logger.Fatal("Rule installation failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, wmName, configPath, rule string) error {
	var target wmrule.Target
	if wmName != "" {
		t, ok := wmrule.TargetByName(wmName)
		if !ok {
			return fmt.Errorf("unsupported window manager %q", wmName)
		}
		target = t
	} else {
		t, ok := wmrule.DetectTarget(logger)
		if !ok {
			return fmt.Errorf("no supported window manager detected; pass --wm")
		}
		target = t
	}

	if configPath == "" {
		configPath = target.ConfigPath
	}
	if rule == "" {
		rule = target.Rule
	}

	changed, err := wmrule.EnsureRule(logger, configPath, rule)
	if err != nil {
		return err
	}

	if changed {
		logger.Info("Window rule installed",
			zap.String("wm", target.Name),
			zap.String("config", configPath))
	} else {
		logger.Info("Window rule already installed",
			zap.String("config", configPath))
	}
	return nil
}
