package footer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const keys = "p push · f fill · t transmit · d drain · c clear · q quit"

// Model holds the footer's state
type Model struct {
	width  int
	status string
}

// New creates a new footer model
func New(status string) Model {
	return Model{width: 80, status: status}
}

// SetStatus replaces the text shown left of the key help.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// Status returns the current status text.
func (m Model) Status() string { return m.status }

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
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(keys)
	status := lipgloss.NewStyle().
		Width(max(m.width-lipgloss.Width(help), 0)).
		Render(m.status)
	return lipgloss.JoinHorizontal(lipgloss.Top, status, help)
}
