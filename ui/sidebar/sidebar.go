// Package sidebar shows the transmit queue, oldest packet first.
package sidebar

import (
	"fmt"
	"strings"

	"ax25modem/queue"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the sidebar's state
type Model struct {
	width  int
	height int

	slots       []string
	front, rear int
	full        bool
}

// New creates a new sidebar model
func New() Model {
	return Model{
		width:  36,
		height: 24,
		front:  -1,
		rear:   -1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetQueue takes a snapshot of q. The sidebar keeps no reference to it.
func (m *Model) SetQueue(q *queue.Queue) {
	// Earlier copies of the model still hold the old slice
	m.slots = make([]string, 0, q.Len())
	for k, p := range q.All() {
		m.slots = append(m.slots, fmt.Sprintf("%d %s>%s %s",
			k, p.SourceAddress(), p.DestinationAddress(), p.Payload()))
	}
	m.front, m.rear = q.Indices()
	m.full = q.Full()
}

// Len returns the number of packets in the last snapshot.
func (m Model) Len() int { return len(m.slots) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
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

	title := fmt.Sprintf("Queue %d/%d", len(m.slots), queue.Capacity)
	if m.full {
		title += " FULL"
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Width(max(m.width-4, 0)). // -2 border, -2 padding
		Render(title)

	var b strings.Builder
	b.WriteString(header)

	// Inner height minus the title and the status line
	contentHeight := m.height - 2 - 2
	textWidth := max(m.width-4, 0)

	if len(m.slots) == 0 && contentHeight > 0 {
		b.WriteString("\nempty")
	}
	for i, line := range m.slots {
		if i >= contentHeight {
			break
		}
		if len(line) > textWidth {
			line = line[:textWidth]
		}
		b.WriteRune('\n')
		b.WriteString(line)
	}

	if m.height-2 > 1 {
		b.WriteString(fmt.Sprintf("\nfront %d rear %d", m.front, m.rear))
	}

	return style.Render(b.String())
}
