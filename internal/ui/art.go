package ui

import (
	"image"
	"strings"
	"sync/atomic"
)

// Global image ID counter
var nextImageID uint32

func getNextImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// artState tracks the cover and background images transmitted to the
// terminal. Images are transmitted once per artwork change and then
// placed by ID on every frame.
type artState struct {
	enabled bool

	cover      image.Image
	background image.Image
	coverID    uint32
	bgID       uint32

	// Pending transmit/delete escapes, emitted exactly once
	pending     string
	transmitted bool
}

func newArtState() *artState {
	return &artState{enabled: IsKittySupported()}
}

// SetArtwork prepares transmission of new images. Passing the same
// image pointers again is a no-op so unchanged artwork costs nothing.
func (a *artState) SetArtwork(cover, background image.Image) {
	if !a.enabled {
		return
	}
	if cover == a.cover && background == a.background {
		return
	}

	var sb strings.Builder
	if a.coverID != 0 {
		sb.WriteString(DeleteImage(a.coverID))
	}
	if a.bgID != 0 {
		sb.WriteString(DeleteImage(a.bgID))
	}

	a.cover, a.background = cover, background
	a.coverID, a.bgID = 0, 0

	if cover != nil {
		id := getNextImageID()
		if cmd, err := TransmitImage(cover, id); err == nil {
			a.coverID = id
			sb.WriteString(cmd)
		}
	}
	if background != nil {
		id := getNextImageID()
		if cmd, err := TransmitImage(background, id); err == nil {
			a.bgID = id
			sb.WriteString(cmd)
		}
	}

	a.pending = sb.String()
	a.transmitted = false
}

// Clear removes any transmitted images; the placeholder block is drawn
// with plain styles instead.
func (a *artState) Clear() {
	a.SetArtwork(nil, nil)
}

// HasCover reports whether a cover image is ready for placement.
func (a *artState) HasCover() bool {
	return a.enabled && a.coverID != 0
}

// TransmitCmd returns the pending transmission escapes, once.
func (a *artState) TransmitCmd() string {
	if a.transmitted {
		return ""
	}
	a.transmitted = true
	return a.pending
}

// PlacementCmd returns the escapes placing the background across the
// whole pane (behind the text) and the cover in its box.
func (a *artState) PlacementCmd(coverRow, coverCol, coverCols, coverRows, termCols, termRows int) string {
	var sb strings.Builder
	if a.bgID != 0 {
		sb.WriteString(PlaceImage(a.bgID, 1, 1, termCols, termRows, zBackground))
	}
	if a.coverID != 0 {
		sb.WriteString(PlaceImage(a.coverID, coverRow, coverCol, coverCols, coverRows, zCover))
	}
	return sb.String()
}
