package domain

import "image"

// Placeholder strings used when the metadata tool reports a track but
// leaves individual fields empty.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Placeholder strings for the "nothing playing" state, shown when the
// metadata tool is absent, fails, or reports no track at all.
const (
	NothingPlayingTitle = "No track playing"
	NothingPlayingHint  = "Open Spotify and play a song"
)

// NowPlaying is the transient snapshot rendered on each refresh tick.
// It is rebuilt from scratch on every poll and never persisted.
type NowPlaying struct {
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
	// Album name
	Album string
	// ArtURL is the URL or local path to the album artwork
	ArtURL string
}

// Nothing returns the snapshot displayed when no media is playing.
func Nothing() NowPlaying {
	return NowPlaying{
		Title:  NothingPlayingTitle,
		Artist: NothingPlayingHint,
	}
}

// Normalize fills missing text fields with their documented defaults.
// The art URL is left alone so the renderer falls back to placeholder art.
func (n NowPlaying) Normalize() NowPlaying {
	if n.Title == "" {
		n.Title = UnknownTitle
	}
	if n.Artist == "" {
		n.Artist = UnknownArtist
	}
	if n.Album == "" {
		n.Album = UnknownAlbum
	}
	return n
}

// HasArt reports whether the snapshot carries an artwork location.
func (n NowPlaying) HasArt() bool {
	return n.ArtURL != ""
}

// Palette holds the display colors derived from the album artwork.
// Colors are hex strings of the form "#rrggbb".
type Palette struct {
	// Primary is the brightest color, used for the track title
	Primary string
	// Secondary is used for the album line
	Secondary string
	// Tertiary is used for the artist line
	Tertiary string
}

// DefaultPalette returns the colors used before any artwork is loaded
// and whenever placeholder artwork is shown.
func DefaultPalette() Palette {
	return Palette{
		Primary:   "#ffffff",
		Secondary: "#888888",
		Tertiary:  "#555555",
	}
}

// Artwork is the displayable result of resolving an art URL: a sharp
// square cover, a blurred and dimmed background, and a color palette.
type Artwork struct {
	Cover      image.Image
	Background image.Image
	Palette    Palette
	// Placeholder is true when this artwork is the solid-color fallback
	Placeholder bool
}

// RenderState is everything the rendering surface needs for one frame.
type RenderState struct {
	Now NowPlaying
	Art Artwork
}

// Resolution holds pixel dimensions for generated background images.
type Resolution struct {
	Width  int
	Height int
}
