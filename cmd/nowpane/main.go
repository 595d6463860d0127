package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/gcolonna/nowpane/internal/artwork"
	"github.com/gcolonna/nowpane/internal/config"
	"github.com/gcolonna/nowpane/internal/domain"
	"github.com/gcolonna/nowpane/internal/engine"
	"github.com/gcolonna/nowpane/internal/fetcher"
	"github.com/gcolonna/nowpane/internal/source"
	"github.com/gcolonna/nowpane/internal/theme"
	"github.com/gcolonna/nowpane/internal/ui"
)

// AppOptions wires the whole dependency graph. Kept as a variable so
// tests can validate the graph with fx.ValidateApp.
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newLogger,
		config.NewAppConfig,
		func(cfg *config.AppConfig) domain.Config { return cfg },
		fx.Annotate(source.NewPlayerctlSource, fx.As(new(domain.Source))),
		fx.Annotate(fetcher.NewArtFetcher, fx.As(new(domain.Fetcher))),
		artwork.NewResolution,
		fx.Annotate(artwork.NewProcessor, fx.As(new(domain.Processor))),
		theme.NewStore,
		ui.NewRenderer,
		func(r *ui.TUIRenderer) domain.Renderer { return r },
		engine.New,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal or renderer exit
	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a file-backed zap logger.
// Stdout is owned by the terminal UI, so nothing may log there.
func newLogger() (*zap.Logger, error) {
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *zap.Logger,
	store *theme.Store,
	renderer *ui.TUIRenderer,
	eng *engine.Engine,
) {
	// The engine loop outlives the startup context, so it gets its own
	loopCtx, cancelLoop := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("nowpane starting")

			if err := store.Load(); err != nil {
				return err
			}
			if err := store.Watch(); err != nil {
				logger.Warn("Theme hot-reload unavailable", zap.Error(err))
			}

			go func() {
				if err := renderer.Run(); err != nil {
					logger.Error("Renderer exited with error", zap.Error(err))
				}
				// Quit key pressed or terminal gone: bring the app down
				if err := shutdowner.Shutdown(); err != nil {
					logger.Error("Shutdown request failed", zap.Error(err))
				}
			}()

			return eng.Start(loopCtx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("nowpane shutting down")

			cancelLoop()
			store.Unwatch()
			if err := eng.Stop(ctx); err != nil {
				logger.Warn("Engine stop failed", zap.Error(err))
			}
			return renderer.Stop(ctx)
		},
	})
}
