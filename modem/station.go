// Package modem drives the packet pipeline of one station: compose packets
// from configuration, hold them in the transmit queue, and turn the oldest
// into a frame when the channel is ready.
package modem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ax25modem/ax25"
	"ax25modem/config"
	"ax25modem/frame"
	"ax25modem/packet"
	"ax25modem/queue"

	"github.com/charmbracelet/log"
)

// Sender accepts frames for transmission, FCS excluded. *kiss.Client is one.
type Sender interface {
	Send(frame []byte) error
}

type address struct {
	call string
	ssid byte
}

// Station owns a transmit queue and the settings packets are built from.
// It is not safe for concurrent use.
type Station struct {
	logger   *log.Logger
	builder  *frame.Builder
	receiver *frame.Builder
	sink     Sender

	source      address
	destination address
	digipeaters []address
	payload     string
	control     byte
	pid         byte

	queue    queue.Queue
	seq      int
	frameBuf [ax25.MaxFrameLength]byte
}

// NewStation creates a station from conf. sink may be nil, in which case
// frames are built but not sent anywhere.
func NewStation(conf config.Config, logger *log.Logger, sink Sender) (*Station, error) {
	s := &Station{
		logger:  logger,
		sink:    sink,
		payload: conf.Packet.Payload,
		control: conf.Packet.Control,
		pid:     conf.Packet.PID,
		queue:   queue.New(),
	}

	var err error
	if s.source.call, s.source.ssid, err = ax25.ParseAddress(conf.Station.Callsign); err != nil {
		return nil, fmt.Errorf("station callsign: %w", err)
	}
	if s.destination.call, s.destination.ssid, err = ax25.ParseAddress(conf.Packet.Destination); err != nil {
		return nil, fmt.Errorf("packet destination: %w", err)
	}
	for i, text := range conf.Packet.Digipeaters {
		call, ssid, err := ax25.ParseAddress(text)
		if err != nil {
			return nil, fmt.Errorf("digipeater %d: %w", i, err)
		}
		s.digipeaters = append(s.digipeaters, address{call, ssid})
	}

	var opts []frame.Option
	if conf.Packet.ControlFields {
		opts = append(opts, frame.WithControlFields())
	}
	s.builder = frame.NewBuilder(opts...)
	s.receiver = frame.NewBuilder(frame.WithControlFields())

	return s, nil
}

// Queue exposes the transmit queue for display.
func (s *Station) Queue() *queue.Queue { return &s.queue }

// Compose builds the next numbered packet. Relays beyond what a packet can
// carry are logged and left off.
func (s *Station) Compose() (packet.Packet, error) {
	n := s.seq
	s.seq++

	p := packet.New()
	if err := p.SetSource(s.source.call, s.source.ssid); err != nil {
		return p, fmt.Errorf("set source: %w", err)
	}
	if err := p.SetDestination(s.destination.call, s.destination.ssid); err != nil {
		return p, fmt.Errorf("set destination: %w", err)
	}
	for i, digi := range s.digipeaters {
		count, err := p.AddDigipeater(digi.call, digi.ssid)
		if err != nil {
			s.logger.Warn("digipeater rejected", "packet", n, "digi", i, "callsign", digi.call, "err", err)
			continue
		}
		s.logger.Debug("added digipeater", "packet", n, "digi", i, "count", count)
	}
	p.SetControl(s.control)
	p.SetPID(s.pid)

	// Only the first %d is numbered, other text is kept as written
	text := strings.Replace(s.payload, "%d", strconv.Itoa(n), 1)
	if kept := p.SetPayload([]byte(text)); kept < len(text) {
		s.logger.Warn("payload truncated", "packet", n, "length", len(text), "kept", kept)
	}
	return p, nil
}

// Enqueue copies p into the transmit queue.
func (s *Station) Enqueue(p *packet.Packet) error {
	if err := s.queue.Push(p); err != nil {
		s.logger.Warn("push failed", "queued", s.queue.Len(), "err", err)
		return err
	}
	s.logger.Info("pushed packet", "source", p.SourceAddress(), "queued", s.queue.Len())
	return nil
}

// ComposeAndEnqueue composes the next packet and queues it.
func (s *Station) ComposeAndEnqueue() (packet.Packet, error) {
	p, err := s.Compose()
	if err != nil {
		return p, err
	}
	return p, s.Enqueue(&p)
}

// Transmit pops the oldest packet, builds its frame and hands the frame to
// the sink. The returned frame includes the FCS and is only valid until the
// next call to Transmit. queue.ErrQueueEmpty is returned as is.
func (s *Station) Transmit() (packet.Packet, []byte, error) {
	p, err := s.queue.Pop()
	if err != nil {
		return p, nil, err
	}

	data, err := s.builder.Append(s.frameBuf[:0], &p)
	if err != nil {
		return p, nil, fmt.Errorf("build frame: %w", err)
	}
	s.logger.Info("framed packet", "source", p.SourceAddress(), "bytes", len(data), "queued", s.queue.Len())

	if s.sink != nil {
		// The TNC appends its own FCS
		if err := s.sink.Send(data[:len(data)-ax25.ChecksumLength]); err != nil {
			return p, data, fmt.Errorf("send frame: %w", err)
		}
	}
	return p, data, nil
}

// Decode parses a frame delivered by the TNC. Those arrive without FCS, so
// one is computed before the frame is parsed. Received frames are UI frames
// from other stations and always carry control and PID, whatever this
// station puts in its own frames.
func (s *Station) Decode(data []byte) (packet.Packet, error) {
	full := make([]byte, 0, len(data)+ax25.ChecksumLength)
	full = append(full, data...)
	full = binary.LittleEndian.AppendUint16(full, ax25.FCS(data))
	return s.receiver.Parse(full)
}

// Fill composes and queues count packets, stopping early only on errors
// other than a full queue. It returns how many were queued.
func (s *Station) Fill(count int) (int, error) {
	queued := 0
	for i := 0; i < count; i++ {
		_, err := s.ComposeAndEnqueue()
		switch {
		case err == nil:
			queued++
		case errors.Is(err, queue.ErrQueueFull):
		default:
			return queued, err
		}
	}
	return queued, nil
}

// Drain transmits until the queue is empty, calling fn for each packet.
func (s *Station) Drain(fn func(p *packet.Packet, frame []byte) error) error {
	for {
		p, data, err := s.Transmit()
		if errors.Is(err, queue.ErrQueueEmpty) {
			return nil
		}
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(&p, data); err != nil {
				return err
			}
		}
	}
}
