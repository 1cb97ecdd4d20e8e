package sidebar

import (
	"testing"

	"ax25modem/packet"
	"ax25modem/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetQueue(t *testing.T) {
	q := queue.New()
	m := New()

	m.SetQueue(&q)
	assert.Zero(t, m.Len())
	assert.Contains(t, m.View(), "empty")
	assert.Contains(t, m.View(), "front -1 rear -1")

	p := packet.New()
	require.NoError(t, p.SetSource("VU3EM", 1))
	require.NoError(t, p.SetDestination("CQ", 0))
	p.SetPayload([]byte("hello"))
	for i := 0; i < queue.Capacity; i++ {
		require.NoError(t, q.Push(&p))
	}

	m.SetQueue(&q)
	assert.Equal(t, queue.Capacity, m.Len())
	view := m.View()
	assert.Contains(t, view, "Queue 10/10 FULL")
	assert.Contains(t, view, "0 VU3EM-1>CQ hello")
	assert.Contains(t, view, "front 0 rear 9")
}

func TestSetQueueKeepsEarlierCopies(t *testing.T) {
	q := queue.New()
	p := packet.New()
	require.NoError(t, p.SetSource("VU3EM", 1))
	require.NoError(t, p.SetDestination("CQ", 0))
	p.SetPayload([]byte("first"))
	require.NoError(t, q.Push(&p))

	m := New()
	m.SetQueue(&q)
	before := m

	_, err := q.Pop()
	require.NoError(t, err)
	p.SetPayload([]byte("second"))
	require.NoError(t, q.Push(&p))
	m.SetQueue(&q)

	assert.Contains(t, before.View(), "0 VU3EM-1>CQ first")
	assert.Contains(t, m.View(), "0 VU3EM-1>CQ second")
}
