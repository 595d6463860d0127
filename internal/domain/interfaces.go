package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNothingPlaying is returned by a Source when the metadata tool is
// unavailable or reports no current track. It is not a failure: the
// caller shows the "nothing playing" snapshot.
var ErrNothingPlaying = errors.New("nothing playing")

// Source provides the current Now-Playing snapshot.
// Implementations query an external metadata tool once per call.
type Source interface {
	// Current returns the snapshot for the currently playing track.
	// Returns ErrNothingPlaying when no player is active.
	Current(ctx context.Context) (NowPlaying, error)
}

// Fetcher retrieves raw album artwork bytes.
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Processor turns raw image bytes into displayable artwork.
type Processor interface {
	// Process decodes, resizes and derives colors from cover art data
	Process(ctx context.Context, imageData []byte) (Artwork, error)

	// Placeholder returns the solid-color fallback artwork used when no
	// art is available or processing fails
	Placeholder() Artwork
}

// Renderer is the display surface the refresh cycle hands its result to.
type Renderer interface {
	// Render shows the given state. It must not block.
	Render(state RenderState)
}

// Config exposes the handful of runtime knobs the widget supports.
type Config interface {
	// RefreshInterval is the poll period of the refresh cycle
	RefreshInterval() time.Duration

	// PlayerCommand returns the metadata tool binary and an optional
	// player name to restrict the query to (empty means any player)
	PlayerCommand() (binary string, player string)

	// CoverSize is the pixel edge of the generated square cover
	CoverSize() int

	// BackgroundSize is the pixel size of the generated background.
	// Zero dimensions mean "detect the primary display resolution".
	BackgroundSize() (width, height int)

	// ThemePath is the stylesheet file watched for changes
	ThemePath() string
}
