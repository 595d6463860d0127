package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const _maxImageSize = 10 * 1024 * 1024 // 10 MB

// ArtFetcher retrieves album artwork from HTTP/HTTPS URLs or local paths.
// Many players report art as file:// URLs, so both schemes are handled.
type ArtFetcher struct {
	logger *zap.Logger
	client *http.Client
}

// NewArtFetcher creates a new artwork fetcher instance
func NewArtFetcher(logger *zap.Logger) *ArtFetcher {
	return &ArtFetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 5 * time.Second, // Essential to keep the refresh cycle from stalling
		},
	}
}

// Fetch reads image data from the given URL or path
func (f *ArtFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return f.fetchHTTP(ctx, url)
	case strings.HasPrefix(url, "file://"):
		return f.readLocal(strings.TrimPrefix(url, "file://"))
	case strings.HasPrefix(url, "/"):
		return f.readLocal(url)
	default:
		return nil, fmt.Errorf("unsupported art url: %q", url)
	}
}

func (f *ArtFetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "nowpane/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("url is not an image: %s", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, _maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	f.logger.Debug("Artwork fetched", zap.Int("bytes", len(data)), zap.String("url", url))
	return data, nil
}

func (f *ArtFetcher) readLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat art file: %w", err)
	}
	if info.Size() > _maxImageSize {
		return nil, fmt.Errorf("art file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read art file: %w", err)
	}

	f.logger.Debug("Artwork read from disk", zap.Int("bytes", len(data)), zap.String("path", path))
	return data, nil
}
