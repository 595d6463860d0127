// Package ui renders the now-playing pane as a full-screen terminal
// program, with album art drawn over the Kitty graphics protocol.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gcolonna/nowpane/internal/domain"
	"github.com/gcolonna/nowpane/internal/theme"
)

// TUIRenderer owns the bubbletea program and feeds it snapshots from
// the refresh engine and theme reloads from the stylesheet watcher.
type TUIRenderer struct {
	logger  *zap.Logger
	program *tea.Program
	done    chan struct{}
}

// NewRenderer creates the terminal renderer and hooks it up to theme
// reload notifications.
func NewRenderer(logger *zap.Logger, store *theme.Store) *TUIRenderer {
	r := &TUIRenderer{
		logger:  logger,
		program: tea.NewProgram(newModel(store.Current()), tea.WithAltScreen()),
		done:    make(chan struct{}),
	}
	store.OnChange(r.ApplyTheme)
	return r
}

// Render shows the given state. Safe to call from any goroutine.
func (r *TUIRenderer) Render(state domain.RenderState) {
	r.program.Send(stateMsg(state))
}

// ApplyTheme pushes a reloaded stylesheet to the running program.
func (r *TUIRenderer) ApplyTheme(th theme.Theme) {
	r.logger.Info("Applying reloaded theme")
	r.program.Send(themeMsg(th))
}

// Run blocks until the program exits (quit key or Stop).
func (r *TUIRenderer) Run() error {
	defer close(r.done)

	r.logger.Info("Terminal renderer started",
		zap.Bool("kittyGraphics", IsKittySupported()))

	if _, err := r.program.Run(); err != nil {
		return fmt.Errorf("terminal program failed: %w", err)
	}
	return nil
}

// Stop asks the program to quit and waits for Run to return.
func (r *TUIRenderer) Stop(ctx context.Context) error {
	r.program.Quit()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ domain.Renderer = (*TUIRenderer)(nil)
