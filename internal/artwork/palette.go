package artwork

import (
	"image"

	"github.com/gcolonna/nowpane/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
	colorextractor "github.com/marekm4/color-extractor"
)

// minLightness is the HSL lightness below which a dominant color is
// considered too dark to read against the dimmed background
// (roughly 80/255).
const minLightness = 0.31

// Lightness factors for the three palette slots. The title gets the
// brightest variant, the album line the plain dominant color.
const (
	primaryBoost  = 1.5
	tertiaryBoost = 1.2
)

// extractPalette derives the display colors from the dominant color of
// the cover art. Dark covers fall back to the default white/gray palette.
func extractPalette(img image.Image) domain.Palette {
	colors := colorextractor.ExtractColors(img)
	if len(colors) == 0 {
		return domain.DefaultPalette()
	}

	dominant, ok := colorful.MakeColor(colors[0])
	if !ok {
		return domain.DefaultPalette()
	}

	if _, _, l := dominant.Hsl(); l < minLightness {
		return domain.DefaultPalette()
	}

	return domain.Palette{
		Primary:   scaleLightness(dominant, primaryBoost).Hex(),
		Secondary: dominant.Hex(),
		Tertiary:  scaleLightness(dominant, tertiaryBoost).Hex(),
	}
}

// scaleLightness multiplies the HSL lightness of a color, clamped to [0, 1].
func scaleLightness(c colorful.Color, factor float64) colorful.Color {
	h, s, l := c.Hsl()
	l *= factor
	if l > 1 {
		l = 1
	}
	if l < 0 {
		l = 0
	}
	return colorful.Hsl(h, s, l).Clamped()
}
