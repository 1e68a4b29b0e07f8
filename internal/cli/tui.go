package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ModeListModel - Interactive mode selection
// =============================================================================

// ModeListModel is the bubbletea model of the mode picker.
type ModeListModel struct {
	Modes    []catalog.Mode
	Cursor   int
	Selected catalog.Mode
	Height   int
	Offset   int
}

// NewModeListModel creates a picker with the cursor on initial, if listed.
func NewModeListModel(initial catalog.Mode) ModeListModel {
	m := ModeListModel{Modes: catalog.Modes(), Height: 16}
	for i, mode := range m.Modes {
		if mode == initial {
			m.Cursor = i
		}
	}
	m.scroll()
	return m
}

func (m ModeListModel) Init() tea.Cmd {
	return nil
}

func (m ModeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Modes)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Modes) - 1
		case "enter":
			m.Selected = m.Modes[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 4)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *ModeListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ModeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Background Mode"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Modes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		mode := m.Modes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, string(mode), fmt.Sprint(mode.MinColors()), mode.Description()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Mode", "Colors", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Modes))))
	return b.String()
}

// pickMode runs the picker on the terminal.
func pickMode(ctx context.Context, initial catalog.Mode) (catalog.Mode, error) {
	final, err := tea.NewProgram(NewModeListModel(initial), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "mode picker")
	}
	selected := final.(ModeListModel).Selected
	if selected == "" {
		return "", errors.New(errors.ErrCodeInvalidMode, "no mode selected")
	}
	return selected, nil
}
