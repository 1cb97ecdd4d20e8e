// Package msgbar is a scrolling log of station events.
package msgbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barHeight = 7 // Total height of the component (including border)
)

// Event is a single line for the message bar. Send it through Update.
type Event string

// Model holds the message bar's state
type Model struct {
	width    int
	height   int
	messages []string // Newest first
}

// New creates a new message bar model
func New() Model {
	return Model{
		width:    80,
		height:   barHeight,
		messages: make([]string, 0),
	}
}

// Height is the fixed height of the bar, borders included.
func Height() int { return barHeight }

func (m Model) Init() tea.Cmd {
	return nil
}

// Messages returns the retained lines, newest first.
func (m Model) Messages() []string { return m.messages }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = barHeight

	case Event:
		m.messages = append([]string{string(msg)}, m.messages...)

		maxMessages := barHeight - 2
		if len(m.messages) > maxMessages {
			m.messages = m.messages[:maxMessages]
		}
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(m.width - 2).   // -2 for border
		Height(m.height - 2). // -2 for border
		Padding(0, 1)

	var b strings.Builder

	contentWidth := max(m.width-4, 0) // -border, -padding
	numMessages := max(m.height-2, 0)

	for i := 0; i < numMessages; i++ {
		if i < len(m.messages) {
			// Oldest at the top so lines read in arrival order
			msg := m.messages[len(m.messages)-1-i]
			if len(msg) > contentWidth {
				msg = msg[:contentWidth]
			}
			b.WriteString(msg)
		}
		if i < numMessages-1 {
			b.WriteRune('\n')
		}
	}

	return style.Render(b.String())
}
