// internal/tui/model.go
//
// Bubble Tea front end for a single game.
// Responsibilities:
//   - Translate key messages into keystroke events for the game.
//   - Handle the terminal-only keys: ctrl+r restarts, esc/ctrl+c quit.
//   - Render the board as two-line tiles (cipher letter over guess),
//     wrapped at word boundaries, with the focused slot reversed.

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/game"
	"github.com/robalobadob/cryptogram/internal/input"
)

const (
	defaultWidth = 80
	helpLine     = "letters fill · ←/→ move · backspace clears · ctrl+r new cipher · esc/ctrl+c quit"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BB9AF7"))
	cipherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
	fixedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888FB0"))
	guessStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0CAF5"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E"))
	boardPadding = lipgloss.NewStyle().Padding(1, 2)
)

// Model is the Bubble Tea front end for one game.
type Model struct {
	game   *game.Game
	width  int
	height int
	err    error
}

// NewModel wraps g for terminal play.
func NewModel(g *game.Game) Model {
	return Model{game: g, width: defaultWidth}
}

// WithSize returns m sized for a width×height terminal. Non-positive sizes
// are ignored.
func (m Model) WithSize(width, height int) Model {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlR:
		m.err = m.game.Restart()
		if m.err != nil {
			log.Error().Err(m.err).Str("gameId", m.game.ID).Msg("restart")
		}
		return m, nil
	}

	ev := EventFor(msg)
	out := m.game.Dispatch(ev)
	if ev.Kind == input.KindEscape && !out.PreventDefault {
		return m, tea.Quit
	}
	return m, nil
}

// EventFor translates a Bubble Tea key message into a keystroke event.
func EventFor(msg tea.KeyMsg) input.Event {
	if msg.Paste {
		return input.Key(input.KindPaste)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		return input.Key(input.KindDelete)
	case tea.KeyLeft:
		return input.Key(input.KindLeft)
	case tea.KeyRight:
		return input.Key(input.KindRight)
	case tea.KeyTab:
		return input.Key(input.KindTab)
	case tea.KeyEsc:
		return input.Key(input.KindEscape)
	case tea.KeySpace:
		return input.Char(' ')
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return input.Char(msg.Runes[0])
		}
		// several runes in one message is an unbracketed paste
		return input.Key(input.KindPaste)
	}
	return input.Key(input.KindUnknown)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CRYPTOGRAM"))
	b.WriteString("\n\n")
	b.WriteString(Render(m.game.Board(), m.width-4))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("could not restart: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpLine))
	return boardPadding.Render(b.String())
}

// Render draws the board as rows of two-line tiles, wrapping at spaces so
// words stay together.
func Render(board game.Board, width int) string {
	if width < 2 {
		width = defaultWidth
	}
	perLine := width / 2

	var out strings.Builder
	for _, row := range wrap(board.Tiles, perLine) {
		var top, bottom strings.Builder
		for _, t := range row {
			glyph, value := tileText(t)
			if t.Editable {
				top.WriteString(cipherStyle.Render(glyph))
				cell := guessStyle
				if t.Value == "" {
					cell = emptyStyle
				}
				if t.Position == board.Focus {
					cell = cell.Reverse(true)
				}
				bottom.WriteString(cell.Render(value))
			} else {
				top.WriteString(fixedStyle.Render(glyph))
				bottom.WriteString(fixedStyle.Render(value))
			}
			top.WriteString(" ")
			bottom.WriteString(" ")
		}
		out.WriteString(strings.TrimRight(top.String(), " "))
		out.WriteString("\n")
		out.WriteString(strings.TrimRight(bottom.String(), " "))
		out.WriteString("\n\n")
	}
	return out.String()
}

func tileText(t game.Tile) (glyph, value string) {
	if t.Glyph == game.NBSP {
		return " ", " "
	}
	if !t.Editable {
		return t.Glyph, t.Glyph
	}
	if t.Value == "" {
		return t.Glyph, "_"
	}
	return t.Glyph, t.Value
}

// wrap splits tiles into rows of at most perLine tiles, breaking after
// space tiles when a word would overflow. Words longer than a row are split.
func wrap(tiles []game.Tile, perLine int) [][]game.Tile {
	var rows [][]game.Tile
	var row []game.Tile
	for i := 0; i < len(tiles); {
		j := i
		for j < len(tiles) && tiles[j].Glyph != game.NBSP {
			j++
		}
		if j < len(tiles) {
			j++ // keep the trailing space with its word
		}
		word := tiles[i:j]
		if len(row) > 0 && len(row)+len(word) > perLine {
			rows = append(rows, row)
			row = nil
		}
		for len(word) > perLine {
			rows = append(rows, word[:perLine])
			word = word[perLine:]
		}
		row = append(row, word...)
		i = j
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
