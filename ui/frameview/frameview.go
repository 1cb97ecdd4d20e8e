// Package frameview shows the fields and bytes of the most recent frame.
package frameview

import (
	"strings"

	"ax25modem/display"
	"ax25modem/packet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the frame view's state
type Model struct {
	width  int
	height int

	title  string
	fields string
	dump   string
}

// New creates a new frame view
func New() Model {
	return Model{
		width:  44,
		height: 24,
		title:  "No frame yet",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetFrame replaces the displayed frame. data is copied into the dump.
func (m *Model) SetFrame(title string, p *packet.Packet, data []byte) {
	m.title = title
	m.fields = display.RenderPacket(p)
	m.dump = display.HexDump(data)
}

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
		Width(m.width - 2).
		Height(m.height - 2).
		Padding(0, 1)

	header := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Render(m.title)

	lines := []string{header}
	if m.fields != "" {
		lines = append(lines, strings.Split(m.fields, "\n")...)
		lines = append(lines, "")
		lines = append(lines, strings.Split(m.dump, "\n")...)
	}

	// Clip to the inner height so the box never grows
	if inner := max(m.height-2, 0); len(lines) > inner {
		lines = lines[:inner]
	}
	return style.Render(strings.Join(lines, "\n"))
}
