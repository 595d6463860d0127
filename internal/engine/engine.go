package engine

import (
	"context"
	"errors"
	"time"

	"github.com/gcolonna/nowpane/internal/domain"
	"go.uber.org/zap"
)

// Engine drives the metadata refresh cycle.
// On each tick it queries the source, resolves artwork and hands the
// resulting snapshot to the renderer. Every failure collapses to a
// fallback state; nothing here is fatal.
type Engine struct {
	logger    *zap.Logger
	cfg       domain.Config
	source    domain.Source
	fetcher   domain.Fetcher
	processor domain.Processor
	renderer  domain.Renderer

	// Artwork cache for the previous tick. The snapshot is rebuilt every
	// poll, but re-fetching an unchanged art URL once a second is wasted
	// traffic.
	lastArtURL string
	lastArt    domain.Artwork
}

// New creates the refresh engine
func New(
	logger *zap.Logger,
	cfg domain.Config,
	src domain.Source,
	fetch domain.Fetcher,
	proc domain.Processor,
	rend domain.Renderer,
) *Engine {
	return &Engine{
		logger:    logger,
		cfg:       cfg,
		source:    src,
		fetcher:   fetch,
		processor: proc,
		renderer:  rend,
	}
}

// Start launches the poll loop in a goroutine.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...",
		zap.Duration("interval", e.cfg.RefreshInterval()))

	go e.runLoop(ctx)
	return nil
}

// Stop logs shutdown; the loop itself exits with the context.
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopped")
	return nil
}

// runLoop refreshes once immediately, then on every ticker tick until
// the context is cancelled.
func (e *Engine) runLoop(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.RefreshInterval())
	defer ticker.Stop()

	e.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return
		case <-ticker.C:
			e.refresh(ctx)
		}
	}
}

// refresh runs one complete cycle: query, normalize, resolve art, render
func (e *Engine) refresh(ctx context.Context) {
	now, err := e.source.Current(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNothingPlaying) {
			e.logger.Warn("Metadata query failed", zap.Error(err))
		}
		e.lastArtURL = ""
		e.renderer.Render(domain.RenderState{
			Now: domain.Nothing(),
			Art: e.processor.Placeholder(),
		})
		return
	}

	e.renderer.Render(domain.RenderState{
		Now: now,
		Art: e.resolveArt(ctx, now),
	})
}

// resolveArt fetches and processes the snapshot's artwork, reusing the
// previous result when the URL is unchanged. Any failure yields the
// placeholder without caching, so the next tick retries.
func (e *Engine) resolveArt(ctx context.Context, now domain.NowPlaying) domain.Artwork {
	if !now.HasArt() {
		e.lastArtURL = ""
		return e.processor.Placeholder()
	}

	if now.ArtURL == e.lastArtURL && e.lastArt.Cover != nil {
		return e.lastArt
	}

	data, err := e.fetcher.Fetch(ctx, now.ArtURL)
	if err != nil {
		e.logger.Warn("Failed to fetch artwork",
			zap.String("url", now.ArtURL),
			zap.Error(err))
		e.lastArtURL = ""
		return e.processor.Placeholder()
	}

	art, err := e.processor.Process(ctx, data)
	if err != nil {
		e.logger.Warn("Failed to process artwork",
			zap.String("url", now.ArtURL),
			zap.Error(err))
		e.lastArtURL = ""
		return e.processor.Placeholder()
	}

	e.logger.Info("Artwork updated",
		zap.String("track", now.Title),
		zap.String("artist", now.Artist),
		zap.String("url", now.ArtURL))

	e.lastArtURL = now.ArtURL
	e.lastArt = art
	return art
}
