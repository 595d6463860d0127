package engine

import (
	"context"
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/gcolonna/nowpane/internal/domain"
	"go.uber.org/zap"
)

// Hand-rolled collaborators; the engine only needs deterministic behavior.

type stubConfig struct{ interval time.Duration }

func (c *stubConfig) RefreshInterval() time.Duration  { return c.interval }
func (c *stubConfig) PlayerCommand() (string, string) { return "playerctl", "" }
func (c *stubConfig) CoverSize() int                  { return 64 }
func (c *stubConfig) BackgroundSize() (int, int)      { return 320, 180 }
func (c *stubConfig) ThemePath() string               { return "" }

type stubSource struct {
	now domain.NowPlaying
	err error
}

func (s *stubSource) Current(context.Context) (domain.NowPlaying, error) {
	return s.now, s.err
}

type stubFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *stubFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type stubProcessor struct {
	err   error
	calls int
}

func (p *stubProcessor) Process(context.Context, []byte) (domain.Artwork, error) {
	p.calls++
	if p.err != nil {
		return domain.Artwork{}, p.err
	}
	return domain.Artwork{
		Cover:   image.NewRGBA(image.Rect(0, 0, 1, 1)),
		Palette: domain.Palette{Primary: "#101010", Secondary: "#202020", Tertiary: "#303030"},
	}, nil
}

func (p *stubProcessor) Placeholder() domain.Artwork {
	return domain.Artwork{
		Cover:       image.NewRGBA(image.Rect(0, 0, 1, 1)),
		Palette:     domain.DefaultPalette(),
		Placeholder: true,
	}
}

type recordingRenderer struct {
	states []domain.RenderState
}

func (r *recordingRenderer) Render(state domain.RenderState) {
	r.states = append(r.states, state)
}

func (r *recordingRenderer) last(t *testing.T) domain.RenderState {
	t.Helper()
	if len(r.states) == 0 {
		t.Fatal("renderer received no states")
	}
	return r.states[len(r.states)-1]
}

func newTestEngine(src domain.Source, fetch domain.Fetcher, proc domain.Processor, rend domain.Renderer) *Engine {
	return New(zap.NewNop(), &stubConfig{interval: time.Second}, src, fetch, proc, rend)
}

func TestRefresh_RendersParsedSnapshot(t *testing.T) {
	now := domain.NowPlaying{
		Title:  "Karma Police",
		Artist: "Radiohead",
		Album:  "OK Computer",
		ArtURL: "https://example.com/ok.jpg",
	}
	rend := &recordingRenderer{}
	e := newTestEngine(&stubSource{now: now}, &stubFetcher{data: []byte("img")}, &stubProcessor{}, rend)

	e.refresh(context.Background())

	state := rend.last(t)
	if state.Now != now {
		t.Errorf("snapshot mismatch:\n got %+v\nwant %+v", state.Now, now)
	}
	if state.Art.Placeholder {
		t.Error("expected processed artwork, got placeholder")
	}
}

func TestRefresh_NothingPlaying(t *testing.T) {
	rend := &recordingRenderer{}
	e := newTestEngine(
		&stubSource{err: domain.ErrNothingPlaying},
		&stubFetcher{},
		&stubProcessor{},
		rend,
	)

	e.refresh(context.Background())

	state := rend.last(t)
	if state.Now != domain.Nothing() {
		t.Errorf("expected nothing-playing snapshot, got %+v", state.Now)
	}
	if !state.Art.Placeholder {
		t.Error("expected placeholder artwork")
	}
}

func TestRefresh_FetchFailureFallsBackToPlaceholder(t *testing.T) {
	now := domain.NowPlaying{
		Title:  "Title",
		Artist: "Artist",
		Album:  "Album",
		ArtURL: "https://unreachable.example/art.png",
	}
	rend := &recordingRenderer{}
	e := newTestEngine(
		&stubSource{now: now},
		&stubFetcher{err: fmt.Errorf("connection refused")},
		&stubProcessor{},
		rend,
	)

	e.refresh(context.Background())

	state := rend.last(t)
	if state.Now != now {
		t.Errorf("text fields must still render on art failure, got %+v", state.Now)
	}
	if !state.Art.Placeholder {
		t.Error("expected placeholder artwork on fetch failure")
	}
}

func TestRefresh_DecodeFailureFallsBackToPlaceholder(t *testing.T) {
	now := domain.NowPlaying{Title: "T", Artist: "A", Album: "B", ArtURL: "https://example.com/bad.png"}
	rend := &recordingRenderer{}
	e := newTestEngine(
		&stubSource{now: now},
		&stubFetcher{data: []byte("not-an-image")},
		&stubProcessor{err: fmt.Errorf("failed to decode image")},
		rend,
	)

	e.refresh(context.Background())

	if !rend.last(t).Art.Placeholder {
		t.Error("expected placeholder artwork on decode failure")
	}
}

func TestRefresh_ArtworkCachedWhileURLUnchanged(t *testing.T) {
	now := domain.NowPlaying{Title: "T", Artist: "A", Album: "B", ArtURL: "https://example.com/a.jpg"}
	fetch := &stubFetcher{data: []byte("img")}
	src := &stubSource{now: now}
	rend := &recordingRenderer{}
	e := newTestEngine(src, fetch, &stubProcessor{}, rend)

	e.refresh(context.Background())
	e.refresh(context.Background())
	e.refresh(context.Background())

	if fetch.calls != 1 {
		t.Errorf("expected a single fetch for an unchanged URL, got %d", fetch.calls)
	}

	// URL change busts the cache
	src.now.ArtURL = "https://example.com/b.jpg"
	e.refresh(context.Background())
	if fetch.calls != 2 {
		t.Errorf("expected refetch after URL change, got %d calls", fetch.calls)
	}
}

func TestRefresh_NoArtURL(t *testing.T) {
	now := domain.NowPlaying{Title: "T", Artist: "A", Album: "B"}
	fetch := &stubFetcher{}
	rend := &recordingRenderer{}
	e := newTestEngine(&stubSource{now: now}, fetch, &stubProcessor{}, rend)

	e.refresh(context.Background())

	if fetch.calls != 0 {
		t.Errorf("fetcher must not be called without an art URL, got %d calls", fetch.calls)
	}
	if !rend.last(t).Art.Placeholder {
		t.Error("expected placeholder artwork")
	}
}

func TestRunLoop_StopsOnContextCancel(t *testing.T) {
	rend := &recordingRenderer{}
	e := New(
		zap.NewNop(),
		&stubConfig{interval: 10 * time.Millisecond},
		&stubSource{err: domain.ErrNothingPlaying},
		&stubFetcher{},
		&stubProcessor{},
		rend,
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.runLoop(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run loop did not stop after context cancellation")
	}

	if len(rend.states) < 2 {
		t.Errorf("expected at least initial + one ticked render, got %d", len(rend.states))
	}
}
