package source

import (
	"context"
	"strings"

	"github.com/gcolonna/nowpane/internal/domain"
	"go.uber.org/zap"
)

// MPRIS metadata keys emitted by playerctl
const (
	keyTitle  = "xesam:title"
	keyArtist = "xesam:artist"
	keyAlbum  = "xesam:album"
	keyArtURL = "mpris:artUrl"
)

// PlayerctlSource polls the playerctl CLI for the current track.
// Output format is lines of `<namespace> <key> <value...>`.
type PlayerctlSource struct {
	logger *zap.Logger
	runner Runner
	binary string
	player string // Optional player name for `-p`, empty means any
}

// NewPlayerctlSource creates a source backed by the playerctl binary
func NewPlayerctlSource(logger *zap.Logger, cfg domain.Config) *PlayerctlSource {
	binary, player := cfg.PlayerCommand()

	if !commandExists(binary) {
		logger.Warn("Metadata tool not found in PATH, widget will show the idle state",
			zap.String("binary", binary))
	}

	return &PlayerctlSource{
		logger: logger,
		runner: NewExecRunner(),
		binary: binary,
		player: player,
	}
}

// Current queries the metadata tool once and returns the parsed snapshot.
// Any tool failure collapses to ErrNothingPlaying; nothing here is fatal.
func (s *PlayerctlSource) Current(ctx context.Context) (domain.NowPlaying, error) {
	args := []string{"metadata"}
	if s.player != "" {
		args = append([]string{"-p", s.player}, args...)
	}

	out, err := s.runner.Run(ctx, s.binary, args...)
	if err != nil {
		// playerctl exits non-zero when no player is running; treat every
		// failure the same way
		s.logger.Debug("Metadata tool invocation failed",
			zap.String("binary", s.binary),
			zap.Error(err))
		return domain.NowPlaying{}, domain.ErrNothingPlaying
	}

	meta := parseMetadata(string(out))
	if len(meta) == 0 {
		return domain.NowPlaying{}, domain.ErrNothingPlaying
	}

	now := domain.NowPlaying{
		Title:  meta[keyTitle],
		Artist: meta[keyArtist],
		Album:  meta[keyAlbum],
		ArtURL: meta[keyArtURL],
	}.Normalize()

	s.logger.Debug("Metadata parsed",
		zap.String("title", now.Title),
		zap.String("artist", now.Artist),
		zap.String("album", now.Album))

	return now, nil
}

// parseMetadata converts playerctl output into a key/value map.
// Each line is `<namespace> <key> <value...>`: the first two
// whitespace-delimited tokens are namespace and key, the remainder is the
// value with internal whitespace preserved. Short lines are skipped.
func parseMetadata(output string) map[string]string {
	meta := make(map[string]string)

	for _, line := range strings.Split(output, "\n") {
		_, rest := cutField(line)
		key, value := cutField(rest)
		value = strings.TrimRight(value, " \t\r")
		if key == "" || value == "" {
			continue
		}
		meta[key] = value
	}

	return meta
}

// cutField splits off the first whitespace-delimited token, returning the
// token and the remainder with leading whitespace removed.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
