package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const title = "ax25modem"

// Model holds the header's state
type Model struct {
	width   int
	station string
}

// New creates a new header model for the given station callsign
func New(station string) Model {
	return Model{
		width:   80, // Default width, will be updated
		station: station,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	text := title
	if m.station != "" {
		text += " · " + m.station
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("255")).
		Width(m.width).
		Align(lipgloss.Center)

	return style.Render(text)
}
