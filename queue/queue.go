// Package queue buffers packets awaiting transmission.
//
// Queue is a fixed-capacity circular buffer of packet values. Packets are
// copied in on Push and copied out on Pop, so the queue never shares a
// packet with its caller. Capacity is a hard bound: a full queue rejects
// further pushes rather than growing.
//
// A Queue is not safe for concurrent use; callers that share one between
// goroutines must serialize access.
package queue

import (
	"errors"
	"iter"

	"ax25modem/packet"
)

// Capacity is the number of packets a Queue holds.
const Capacity = 10

var (
	// ErrQueueFull indicates Push found every slot occupied.
	ErrQueueFull = errors.New("queue full")
	// ErrQueueEmpty indicates Pop found nothing to remove.
	ErrQueueEmpty = errors.New("queue empty")
)

// Queue is a bounded FIFO of packets. front and rear index the oldest and
// newest packets; both are -1 when the queue is empty.
//
// Use New or Init before use.
type Queue struct {
	front int
	rear  int
	slots [Capacity]packet.Packet
}

// New returns an empty queue.
func New() Queue {
	var q Queue
	q.Init()
	return q
}

// Init empties the queue.
func (q *Queue) Init() {
	q.front = -1
	q.rear = -1
	clear(q.slots[:])
}

// Full reports whether Push would fail.
func (q *Queue) Full() bool {
	return q.front == q.rear+1 || (q.front == 0 && q.rear == Capacity-1)
}

// Empty reports whether Pop would fail.
func (q *Queue) Empty() bool {
	return q.front == -1
}

// Push copies p into the slot after the rear of the queue.
func (q *Queue) Push(p *packet.Packet) error {
	if p == nil {
		return packet.ErrInvalidArgument
	}
	if q.Full() {
		return ErrQueueFull
	}
	if q.front == -1 {
		q.front = 0
	}
	q.rear = (q.rear + 1) % Capacity
	q.slots[q.rear] = *p
	return nil
}

// Pop removes the packet at the front of the queue and returns a copy.
func (q *Queue) Pop() (packet.Packet, error) {
	if q.Empty() {
		return packet.Packet{}, ErrQueueEmpty
	}

	p := q.slots[q.front]
	if q.front == q.rear {
		// That was the last one
		q.front, q.rear = -1, -1
	} else {
		q.front = (q.front + 1) % Capacity
	}
	return p, nil
}

// Len returns the number of packets queued.
func (q *Queue) Len() int {
	switch {
	case q.Empty():
		return 0
	case q.rear >= q.front:
		return q.rear - q.front + 1
	default:
		return Capacity - q.front + q.rear + 1
	}
}

// Cap returns the capacity of the queue.
func (q *Queue) Cap() int { return Capacity }

// Indices returns the front and rear slot indices, -1 and -1 when empty.
func (q *Queue) Indices() (front, rear int) {
	return q.front, q.rear
}

// All yields each queued packet with its slot index, front to rear,
// without removing anything. The queue must not be modified during
// iteration.
func (q *Queue) All() iter.Seq2[int, packet.Packet] {
	return func(yield func(int, packet.Packet) bool) {
		if q.Empty() {
			return
		}
		for k := q.front; ; k = (k + 1) % Capacity {
			if !yield(k, q.slots[k]) || k == q.rear {
				return
			}
		}
	}
}
