// Package display renders packets, queues and frames as human readable
// text. It only reads what it is given.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ax25modem/config"
	"ax25modem/packet"
	"ax25modem/queue"

	"github.com/charmbracelet/lipgloss"
	"github.com/lestrrat-go/strftime"
)

const separator = "-------------------------------"

// Printer writes diagnostic text to an output sink.
type Printer struct {
	w         io.Writer
	timestamp *strftime.Strftime // nil when disabled
	color     bool

	box   lipgloss.Style
	label lipgloss.Style
	title lipgloss.Style
}

// New creates a printer writing to w.
func New(w io.Writer, conf config.DisplayConfig) (*Printer, error) {
	p := &Printer{w: w, color: conf.Color}

	if conf.Timestamp != "" {
		f, err := strftime.New(conf.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp format %q: %w", conf.Timestamp, err)
		}
		p.timestamp = f
	}

	// Style against the sink we write to, not whatever stdout happens to be
	r := lipgloss.NewRenderer(w)
	p.box = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)
	p.label = r.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	p.title = r.NewStyle().Bold(true).Underline(true)

	return p, nil
}

// PrintPacket writes the fields of pkt.
func (p *Printer) PrintPacket(pkt *packet.Packet) error {
	if pkt == nil {
		return packet.ErrInvalidArgument
	}
	return p.write(p.block("", packetLines(pkt)))
}

// PrintQueue writes every packet in q, front to rear, without removing them.
func (p *Printer) PrintQueue(q *queue.Queue) error {
	var b strings.Builder
	if q.Empty() {
		b.WriteString("Packet queue empty...\n")
	}
	for k, pkt := range q.All() {
		b.WriteString(p.block(fmt.Sprintf("Slot %d", k), packetLines(&pkt)))
	}
	front, rear := q.Indices()
	fmt.Fprintf(&b, "Queue Status: %d, %d\n", front, rear)
	return p.write(b.String())
}

// PrintFrame writes a hex dump of a built frame.
func (p *Printer) PrintFrame(data []byte) error {
	return p.write(p.block(fmt.Sprintf("Frame (%d bytes)", len(data)), strings.Split(HexDump(data), "\n")))
}

// RenderPacket returns the lines PrintPacket would write, without styling.
func RenderPacket(pkt *packet.Packet) string {
	return strings.Join(packetLines(pkt), "\n")
}

func packetLines(pkt *packet.Packet) []string {
	lines := []string{
		"Source : " + pkt.SourceAddress().String(),
		"Destination : " + pkt.DestinationAddress().String(),
	}

	for i := 0; i < pkt.NumDigipeaters(); i++ {
		addr, err := pkt.DigipeaterAddress(i)
		if err != nil {
			lines = append(lines, "Error in retrieving digipeater data")
			break
		}
		last := "NO"
		if addr.Last() {
			last = "YES"
		}
		lines = append(lines, fmt.Sprintf("Digipeater %d : %s (Last Digipeater : %s)", i, addr, last))
	}

	lines = append(lines,
		fmt.Sprintf("Control Field : 0x%02x", pkt.Control()),
		fmt.Sprintf("PID : 0x%02x", pkt.PID()),
		"Payload : "+printable(pkt.Payload()),
		fmt.Sprintf("Payload Length : %d", pkt.PayloadLength()),
	)
	return lines
}

// printable returns data as text, or as hex when any byte is outside
// printable ASCII.
func printable(data []byte) string {
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			return fmt.Sprintf("% X", data)
		}
	}
	return string(data)
}

// HexDump formats data 16 bytes per line with offset and ASCII columns.
func HexDump(data []byte) string {
	var b strings.Builder
	for offset := 0; offset < len(data); offset += 16 {
		row := data[offset:min(offset+16, len(data))]

		fmt.Fprintf(&b, "%03x: ", offset)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, " %02x", row[i])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("  ")
		for _, c := range row {
			if c >= 0x20 && c <= 0x7E {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		if offset+16 < len(data) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// block lays out lines under an optional title, boxed when color is on.
func (p *Printer) block(title string, lines []string) string {
	if !p.color {
		var b strings.Builder
		b.WriteString(separator + "\n")
		if title != "" {
			b.WriteString("  " + title + "\n")
		}
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString(separator + "\n")
		return b.String()
	}

	styled := make([]string, 0, len(lines)+1)
	if title != "" {
		styled = append(styled, p.title.Render(title))
	}
	for _, line := range lines {
		if name, value, ok := strings.Cut(line, " : "); ok {
			line = p.label.Render(name) + " : " + value
		}
		styled = append(styled, line)
	}
	return p.box.Render(strings.Join(styled, "\n")) + "\n"
}

func (p *Printer) write(text string) error {
	if p.timestamp != nil {
		text = p.timestamp.FormatString(time.Now()) + "\n" + text
	}
	_, err := io.WriteString(p.w, text)
	return err
}
