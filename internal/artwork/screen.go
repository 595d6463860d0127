package artwork

import (
	"github.com/gcolonna/nowpane/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// NewResolution determines the pixel size used for generated backgrounds.
// An explicit configuration wins; otherwise the primary display is
// detected at startup, with a 1920x1080 fallback. The widget typically
// runs full screen on a dedicated monitor, so rendering the backdrop at
// display resolution keeps it sharp when the terminal scales it.
func NewResolution(logger *zap.Logger, cfg domain.Config) *domain.Resolution {
	if w, h := cfg.BackgroundSize(); w > 0 && h > 0 {
		logger.Info("Background size from configuration",
			zap.Int("width", w),
			zap.Int("height", h))
		return &domain.Resolution{Width: w, Height: h}
	}

	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, falling back to 1920x1080")
		return &domain.Resolution{Width: 1920, Height: 1080}
	}

	// Use primary monitor (index 0)
	bounds := screenshot.GetDisplayBounds(0)
	res := &domain.Resolution{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	logger.Info("Screen resolution detected",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))

	return res
}
