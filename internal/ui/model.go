package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gcolonna/nowpane/internal/domain"
	"github.com/gcolonna/nowpane/internal/theme"
	"github.com/gcolonna/nowpane/internal/ui/render"
)

// Layout constants, in terminal cells.
const (
	marginRows = 2
	marginCols = 6
	gapCols    = 4

	// minimum cells before the art box is dropped entirely
	minArtRows  = 4
	minInfoCols = 16
)

// placeholderColor is the solid block shown when no artwork is
// available or the terminal has no graphics support.
var placeholderColor = lipgloss.Color("#808080")

// stateMsg delivers a fresh render state from the engine.
type stateMsg domain.RenderState

// themeMsg delivers a reloaded stylesheet.
type themeMsg theme.Theme

// Model is the bubbletea model for the now-playing pane.
type Model struct {
	theme  theme.Theme
	state  domain.RenderState
	width  int
	height int
	art    *artState
}

func newModel(th theme.Theme) Model {
	return Model{
		theme: th,
		state: domain.RenderState{Now: domain.Nothing()},
		art:   newArtState(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case stateMsg:
		m.state = domain.RenderState(msg)
		if m.state.Art.Placeholder || m.state.Art.Cover == nil {
			m.art.Clear()
		} else {
			m.art.SetArtwork(m.state.Art.Cover, m.state.Art.Background)
		}

	case themeMsg:
		m.theme = theme.Theme(msg)
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	pal := m.palette()

	artRows, artCols := m.artBox()
	infoWidth := m.width - 2*marginCols - artCols
	if artCols > 0 {
		infoWidth -= gapCols
	}
	if infoWidth < 1 {
		infoWidth = 1
	}

	info := m.renderInfo(pal, infoWidth)

	blocks := []string{strings.Repeat(" ", marginCols), info}
	if artCols > 0 {
		blocks = append(blocks, strings.Repeat(" ", gapCols), m.renderArtBlock(artCols, artRows))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, blocks...)

	frame := lipgloss.Place(
		m.width, m.height,
		lipgloss.Left, lipgloss.Bottom,
		lipgloss.NewStyle().Margin(marginRows, 0).Render(row),
	)

	if !m.art.HasCover() || artCols == 0 {
		return frame
	}

	// Kitty placements ride along after the text frame: the backdrop
	// behind everything, the cover in its box.
	artTop := m.height - marginRows - artRows + 1
	artLeft := marginCols + infoWidth + gapCols + 1
	return frame + m.art.TransmitCmd() + m.art.PlacementCmd(artTop, artLeft, artCols, artRows, m.width, m.height)
}

// palette picks the text colors for this frame: the artwork-derived
// palette when enabled and available, the stylesheet colors otherwise.
func (m Model) palette() domain.Palette {
	if m.theme.UseArtPalette && !m.state.Art.Placeholder && m.state.Art.Palette != (domain.Palette{}) {
		return m.state.Art.Palette
	}
	return domain.Palette{
		Primary:   m.theme.Primary,
		Secondary: m.theme.Secondary,
		Tertiary:  m.theme.Tertiary,
	}
}

// artBox computes the square art box in cells. Terminal cells are about
// twice as tall as wide, so a square needs cols = 2 * rows.
func (m Model) artBox() (rows, cols int) {
	rows = m.height - 2*marginRows
	cols = rows * 2

	if maxCols := m.width / 2; cols > maxCols {
		cols = maxCols
		rows = cols / 2
	}

	if rows < minArtRows || m.width-2*marginCols-gapCols-cols < minInfoCols {
		return 0, 0 // too small, text only
	}
	return rows, cols
}

// renderInfo builds the bottom-aligned artist / title / album column.
func (m Model) renderInfo(pal domain.Palette, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Primary)).Bold(true)
	artistStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Tertiary))
	albumStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Secondary))

	lines := []string{
		artistStyle.Render(render.Truncate(m.state.Now.Artist, width)),
		titleStyle.Render(render.Truncate(m.state.Now.Title, width)),
	}
	if m.state.Now.Album != "" {
		album := m.state.Now.Album
		if m.theme.AlbumIcon != "" {
			album = m.theme.AlbumIcon + " " + album
		}
		lines = append(lines, albumStyle.Render(render.Truncate(album, width)))
	}

	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderArtBlock returns the art area: blank cells when a Kitty image
// will be placed over it, a solid gray block otherwise.
func (m Model) renderArtBlock(cols, rows int) string {
	if m.art.HasCover() {
		line := strings.Repeat(" ", cols)
		lines := make([]string, rows)
		for i := range lines {
			lines[i] = line
		}
		return strings.Join(lines, "\n")
	}

	return lipgloss.NewStyle().
		Width(cols).
		Height(rows).
		Background(placeholderColor).
		Render("")
}
