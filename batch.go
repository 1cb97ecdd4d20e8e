package main

import (
	"errors"

	"ax25modem/display"
	"ax25modem/modem"
	"ax25modem/packet"
	"ax25modem/queue"
)

// runBatch queues count packets, printing each, then shows the queue, then
// transmits everything in it. Pushes past capacity are reported by the
// station and skipped.
func runBatch(station *modem.Station, printer *display.Printer, count int) error {
	for i := 0; i < count; i++ {
		p, err := station.Compose()
		if err != nil {
			return err
		}
		if err := printer.PrintPacket(&p); err != nil {
			return err
		}
		if err := station.Enqueue(&p); err != nil && !errors.Is(err, queue.ErrQueueFull) {
			return err
		}
	}

	if err := printer.PrintQueue(station.Queue()); err != nil {
		return err
	}

	err := station.Drain(func(p *packet.Packet, frame []byte) error {
		if err := printer.PrintPacket(p); err != nil {
			return err
		}
		return printer.PrintFrame(frame)
	})
	if err != nil {
		return err
	}

	return printer.PrintQueue(station.Queue())
}
