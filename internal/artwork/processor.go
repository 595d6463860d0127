package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support

	"github.com/disintegration/imaging"
	"github.com/gcolonna/nowpane/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultBlurSigma = 30.0
	// Background brightness delta in percent. The backdrop has to stay
	// dark enough for light text on top of it.
	defaultDimPercent = -70.0
)

// placeholderGray is the solid cover color shown when no artwork is
// available.
var placeholderGray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// Processor turns raw cover art bytes into displayable artwork:
// a sharp square cover, a blurred and dimmed background sized for the
// display, and a text color palette derived from the dominant color.
type Processor struct {
	logger     *zap.Logger
	res        *domain.Resolution // Injected automatically by Fx
	coverSize  int
	blurSigma  float64
	dimPercent float64
}

// NewProcessor creates a new artwork processor
func NewProcessor(logger *zap.Logger, res *domain.Resolution, cfg domain.Config) *Processor {
	return &Processor{
		logger:     logger,
		res:        res,
		coverSize:  cfg.CoverSize(),
		blurSigma:  defaultBlurSigma,
		dimPercent: defaultDimPercent,
	}
}

// Process decodes, resizes and derives colors from cover art data
func (p *Processor) Process(ctx context.Context, imageData []byte) (domain.Artwork, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return domain.Artwork{}, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	// Sharp square cover
	p.logger.Debug("Resizing cover", zap.Int("size", p.coverSize))
	cover := imaging.Fill(img, p.coverSize, p.coverSize, imaging.Center, imaging.Lanczos)

	// Blurred, dimmed backdrop covering the whole pane
	p.logger.Debug("Creating background", zap.Int("w", p.res.Width), zap.Int("h", p.res.Height))
	background := imaging.Fill(img, p.res.Width, p.res.Height, imaging.Center, imaging.Lanczos)
	background = imaging.Blur(background, p.blurSigma)
	background = imaging.AdjustBrightness(background, p.dimPercent)

	art := domain.Artwork{
		Cover:      cover,
		Background: background,
		Palette:    extractPalette(img),
	}

	p.logger.Debug("Artwork processed",
		zap.String("primary", art.Palette.Primary),
		zap.String("secondary", art.Palette.Secondary),
		zap.String("tertiary", art.Palette.Tertiary))

	return art, nil
}

// Placeholder returns the solid-color fallback artwork: a dark gray
// cover on a black background with the default palette.
func (p *Processor) Placeholder() domain.Artwork {
	return domain.Artwork{
		Cover:       imaging.New(p.coverSize, p.coverSize, placeholderGray),
		Background:  imaging.New(p.res.Width, p.res.Height, color.NRGBA{A: 255}),
		Palette:     domain.DefaultPalette(),
		Placeholder: true,
	}
}
