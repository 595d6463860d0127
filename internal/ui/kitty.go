package ui

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"
)

// Z-layers for placements. Text over default-background cells is drawn
// above negative-z images, so the backdrop sits behind everything.
const (
	zBackground = -1
	zCover      = 0
)

// IsKittySupported checks if the terminal supports the Kitty graphics
// protocol. The NOWPANE_GRAPHICS environment variable overrides
// detection: "kitty" forces it on, "none" disables images entirely.
func IsKittySupported() bool {
	switch os.Getenv("NOWPANE_GRAPHICS") {
	case "kitty":
		return true
	case "none":
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM") == "xterm-kitty" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); version != "" {
		// KONSOLE_VERSION is like "220401"; Kitty graphics from 22.04+
		if len(version) >= 4 && version[:4] >= "2204" {
			return true
		}
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// TransmitImage sends an image to the terminal using the Kitty protocol.
// The image is transmitted but not displayed (a=t); PlaceImage shows it.
func TransmitImage(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	// a=t: transmit only, f=100: PNG, i=ID, q=2: suppress responses.
	// Large payloads must be chunked, max 4096 bytes per escape.
	const chunkSize = 4096
	var sb strings.Builder

	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		isLast := end >= len(encoded)

		moreChunks := 0
		if !isLast {
			moreChunks = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, moreChunks)
		} else {
			fmt.Fprintf(&sb, "m=%d;", moreChunks)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}

	return sb.String(), nil
}

// PlaceImage returns the escape sequence displaying a previously
// transmitted image in a width x height cell box at the 1-based terminal
// position (row, col). The fixed placement ID means repositioning
// replaces the previous placement instead of leaving ghost images.
func PlaceImage(id uint32, row, col, width, height, z int) string {
	var sb strings.Builder

	// Save cursor, move to position, place image, restore cursor
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,z=%d,C=1,q=2;%s", escStart, id, width, height, z, escEnd)
	sb.WriteString("\x1b[u")

	return sb.String()
}

// DeleteImage returns the escape sequence deleting a transmitted image
// and all its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}
