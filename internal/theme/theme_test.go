package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(path string) *Store {
	return &Store{
		logger:  zap.NewNop(),
		path:    path,
		current: Default(),
	}
}

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	s := newTestStore(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, s.Load())
	assert.Equal(t, Default(), s.Current())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeTheme(t, `
use_art_palette = false
primary = "#ff00aa"
album_icon = ">"
`)
	s := newTestStore(path)

	require.NoError(t, s.Load())

	th := s.Current()
	assert.False(t, th.UseArtPalette)
	assert.Equal(t, "#ff00aa", th.Primary)
	assert.Equal(t, ">", th.AlbumIcon)
	// Untouched fields keep their defaults
	assert.Equal(t, Default().Secondary, th.Secondary)
	assert.Equal(t, Default().Background, th.Background)
}

func TestLoad_InvalidColorRejected(t *testing.T) {
	path := writeTheme(t, `primary = "notacolor"`)
	s := newTestStore(path)

	err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid primary color")
	// Defaults stay active
	assert.Equal(t, Default(), s.Current())
}

func TestLoad_MalformedTOMLRejected(t *testing.T) {
	path := writeTheme(t, `primary = [broken`)
	s := newTestStore(path)

	require.Error(t, s.Load())
	assert.Equal(t, Default(), s.Current())
}

func TestReload_FailureKeepsPreviousTheme(t *testing.T) {
	path := writeTheme(t, `primary = "#123456"`)
	s := newTestStore(path)
	require.NoError(t, s.Load())

	notified := false
	s.OnChange(func(Theme) { notified = true })

	// Break the file, then reload: previous theme survives, no notification
	require.NoError(t, os.WriteFile(path, []byte(`primary = "broken"`), 0644))
	s.reload()

	assert.Equal(t, "#123456", s.Current().Primary)
	assert.False(t, notified)
}

func TestReload_NotifiesListener(t *testing.T) {
	path := writeTheme(t, `primary = "#123456"`)
	s := newTestStore(path)
	require.NoError(t, s.Load())

	var got Theme
	s.OnChange(func(th Theme) { got = th })

	require.NoError(t, os.WriteFile(path, []byte(`primary = "#abcdef"`), 0644))
	s.reload()

	assert.Equal(t, "#abcdef", got.Primary)
	assert.Equal(t, "#abcdef", s.Current().Primary)
}

func TestWatch_MissingFileIsNoop(t *testing.T) {
	s := newTestStore(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, s.Watch())
	s.Unwatch()
}
