package main

import (
	"errors"
	"fmt"
	"time"

	"ax25modem/config"
	"ax25modem/device/kiss"
	"ax25modem/modem"
	"ax25modem/packet"
	"ax25modem/queue"
	"ax25modem/ui/footer"
	"ax25modem/ui/frameview"
	"ax25modem/ui/header"
	"ax25modem/ui/msgbar"
	"ax25modem/ui/sidebar"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lestrrat-go/strftime"
)

// --- Constants for Layout ---
const (
	sidebarWidth = 36
	headerHeight = 1
	footerHeight = 1
)

const eventClock = "%H:%M:%S"

// receivedMsg carries one frame from the TNC, FCS excluded
type receivedMsg []byte

type receiveErrMsg struct{ err error }

// model holds the application's state
type model struct {
	width  int
	height int

	station *modem.Station
	client  *kiss.Client // nil without a TNC
	now     func() time.Time

	headerModel  header.Model
	sidebarModel sidebar.Model
	frameModel   frameview.Model
	msgbarModel  msgbar.Model
	footerModel  footer.Model
}

// initialModel creates the starting model
func initialModel(conf config.Config, station *modem.Station, client *kiss.Client) model {
	status := "no TNC"
	if client != nil {
		status = "TNC " + conf.Interface.Device
	}

	m := model{
		width:        80,
		height:       24,
		station:      station,
		client:       client,
		now:          time.Now,
		headerModel:  header.New(conf.Station.Callsign),
		sidebarModel: sidebar.New(),
		frameModel:   frameview.New(),
		msgbarModel:  msgbar.New(),
		footerModel:  footer.New(status),
	}
	m.sidebarModel.SetQueue(station.Queue())
	return m
}

// listenForFrames is a tea.Cmd that waits for the next frame from the TNC
func (m model) listenForFrames() tea.Cmd {
	if m.client == nil {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		data, err := client.Receive()
		if err != nil {
			return receiveErrMsg{err}
		}
		return receivedMsg(data)
	}
}

func (m model) Init() tea.Cmd {
	return m.listenForFrames()
}

func (m *model) event(format string, args ...any) {
	stamp, err := strftime.Format(eventClock, m.now())
	if err != nil {
		stamp = "--:--:--"
	}
	line := stamp + " " + fmt.Sprintf(format, args...)
	m.msgbarModel, _ = m.msgbarModel.Update(msgbar.Event(line))
}

func (m *model) refreshQueue() {
	q := m.station.Queue()
	m.sidebarModel.SetQueue(q)
}

func (m *model) push() {
	p, err := m.station.ComposeAndEnqueue()
	if err != nil {
		m.event("push failed: %v", err)
		return
	}
	m.event("pushed %s>%s %q", p.SourceAddress(), p.DestinationAddress(), p.Payload())
}

func (m *model) fill() {
	n, err := m.station.Fill(queue.Capacity - m.station.Queue().Len())
	if err != nil {
		m.event("fill failed after %d: %v", n, err)
		return
	}
	m.event("queued %d packets", n)
}

func (m *model) sent(p *packet.Packet, data []byte) {
	m.frameModel.SetFrame(fmt.Sprintf("Sent frame (%d bytes)", len(data)), p, data)
	m.event("sent %s>%s %d bytes", p.SourceAddress(), p.DestinationAddress(), len(data))
}

func (m *model) transmit() {
	p, data, err := m.station.Transmit()
	switch {
	case errors.Is(err, queue.ErrQueueEmpty):
		m.event("nothing to transmit")
		return
	case err != nil:
		m.event("transmit failed: %v", err)
		if data == nil {
			return
		}
	}
	m.sent(&p, data)
}

func (m *model) drain() {
	err := m.station.Drain(func(p *packet.Packet, data []byte) error {
		m.sent(p, data)
		return nil
	})
	if err != nil {
		m.event("drain stopped: %v", err)
	}
}

func (m *model) received(data []byte) {
	p, err := m.station.Decode(data)
	if err != nil {
		m.event("received %d bytes, undecodable: %v", len(data), err)
		return
	}
	m.frameModel.SetFrame(fmt.Sprintf("Received frame (%d bytes)", len(data)), &p, data)
	m.event("received %s>%s %q", p.SourceAddress(), p.DestinationAddress(), p.Payload())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case receivedMsg:
		m.received(msg)
		cmds = append(cmds, m.listenForFrames())

	case receiveErrMsg:
		m.event("receive stopped: %v", msg.err)
		m.footerModel.SetStatus("TNC receive stopped")

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		mainHeight := max(m.height-headerHeight-msgbar.Height()-footerHeight, 1)
		frameWidth := max(m.width-sidebarWidth, 1)

		var cmd tea.Cmd
		m.headerModel, cmd = m.headerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: headerHeight})
		cmds = append(cmds, cmd)
		m.sidebarModel, cmd = m.sidebarModel.Update(tea.WindowSizeMsg{Width: sidebarWidth, Height: mainHeight})
		cmds = append(cmds, cmd)
		m.frameModel, cmd = m.frameModel.Update(tea.WindowSizeMsg{Width: frameWidth, Height: mainHeight})
		cmds = append(cmds, cmd)
		m.msgbarModel, cmd = m.msgbarModel.Update(tea.WindowSizeMsg{Width: m.width, Height: msgbar.Height()})
		cmds = append(cmds, cmd)
		m.footerModel, cmd = m.footerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: footerHeight})
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.push()
		case "f":
			m.fill()
		case "t", "enter":
			m.transmit()
		case "d":
			m.drain()
		case "c":
			m.station.Queue().Init()
			m.event("queue cleared")
		}
	}

	m.refreshQueue()
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebarModel.View(),
		m.frameModel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerModel.View(),
		middle,
		m.msgbarModel.View(),
		m.footerModel.View(),
	)
}
