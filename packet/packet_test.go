package packet

import (
	"fmt"
	"strings"
	"testing"

	"ax25modem/ax25"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	assert.Equal(t, ax25.DefaultControl, p.Control())
	assert.Equal(t, ax25.DefaultPID, p.PID())
	assert.Zero(t, p.NumDigipeaters())
	assert.Zero(t, p.PayloadLength())
	assert.Empty(t, p.Payload())

	call, ssid := p.Source()
	assert.Equal(t, "      ", call)
	assert.Zero(t, ssid)
	assert.Equal(t, ax25.Blank, p.DestinationAddress())
}

func TestInitIdempotent(t *testing.T) {
	var once, twice Packet
	once.Init()
	twice.Init()
	twice.Init()
	assert.Equal(t, once, twice)

	dirty := New()
	require.NoError(t, dirty.SetSource("VU3EM", 1))
	_, err := dirty.AddDigipeater("DIGI1", 1)
	require.NoError(t, err)
	dirty.SetPayload([]byte("hello"))
	dirty.SetControl(0x03)
	dirty.Init()
	assert.Equal(t, once, dirty)
}

func TestSetSourceAndDestination(t *testing.T) {
	p := New()
	require.NoError(t, p.SetSource("VU3EM", 1))
	require.NoError(t, p.SetDestination("CQ", 0))

	call, ssid := p.Source()
	assert.Equal(t, "VU3EM ", call)
	assert.Equal(t, byte(1), ssid)

	call, ssid = p.Destination()
	assert.Equal(t, "CQ    ", call)
	assert.Equal(t, byte(0), ssid)

	assert.False(t, p.SourceAddress().Last())
	assert.False(t, p.DestinationAddress().Last())
}

func TestSetSourceEmptyIsNoop(t *testing.T) {
	p := New()
	require.NoError(t, p.SetSource("VU3EM", 1))
	require.NoError(t, p.SetDestination("CQ", 0))
	before := p

	assert.ErrorIs(t, p.SetSource("", 5), ErrInvalidArgument)
	assert.ErrorIs(t, p.SetDestination("", 5), ErrInvalidArgument)
	assert.Equal(t, before, p)
}

func TestAddDigipeater(t *testing.T) {
	p := New()
	for i := 1; i <= ax25.MaxDigipeaters; i++ {
		n, err := p.AddDigipeater(fmt.Sprintf("DIGI%d", i), byte(i))
		require.NoError(t, err)
		require.Equal(t, i, n)
	}

	n, err := p.AddDigipeater("DIGI9", 9)
	assert.ErrorIs(t, err, ErrRelayChainFull)
	assert.Zero(t, n)
	assert.Equal(t, ax25.MaxDigipeaters, p.NumDigipeaters())

	call, ssid, last, err := p.Digipeater(ax25.MaxDigipeaters - 1)
	require.NoError(t, err)
	assert.Equal(t, "DIGI8 ", call)
	assert.Equal(t, byte(8), ssid)
	assert.True(t, last)
}

func TestAddDigipeaterOnlyLastIsMarked(t *testing.T) {
	for n := 2; n <= ax25.MaxDigipeaters; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			p := New()
			for i := 0; i < n; i++ {
				_, err := p.AddDigipeater("RELAY", byte(i))
				require.NoError(t, err)
			}
			for i := 0; i < n; i++ {
				_, _, last, err := p.Digipeater(i)
				require.NoError(t, err)
				assert.Equal(t, i == n-1, last, "relay %d", i)
			}
		})
	}
}

func TestAddDigipeaterEmptyCallsign(t *testing.T) {
	p := New()
	_, err := p.AddDigipeater("DIGI1", 1)
	require.NoError(t, err)
	before := p

	n, err := p.AddDigipeater("", 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, n)
	assert.Equal(t, before, p)
}

func TestDigipeaterOutOfRange(t *testing.T) {
	p := New()
	_, _, _, err := p.Digipeater(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = p.AddDigipeater("DIGI1", 1)
	require.NoError(t, err)

	for _, index := range []int{-1, 1, ax25.MaxDigipeaters} {
		_, _, _, err = p.Digipeater(index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", index)
		_, err = p.DigipeaterAddress(index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", index)
	}
}

func TestSetPayload(t *testing.T) {
	p := New()
	n := p.SetPayload([]byte("THIS IS PACKET 0"))
	assert.Equal(t, 16, n)
	assert.Equal(t, 16, p.PayloadLength())
	assert.Equal(t, []byte("THIS IS PACKET 0"), p.Payload())

	long := []byte(strings.Repeat("x", ax25.MaxPayloadLength+40))
	n = p.SetPayload(long)
	assert.Equal(t, ax25.MaxPayloadLength, n)
	assert.Equal(t, long[:ax25.MaxPayloadLength], p.Payload())

	n = p.SetPayload([]byte("ab"))
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("ab"), p.Payload())
}

func TestPacketIsValue(t *testing.T) {
	p := New()
	require.NoError(t, p.SetSource("VU3EM", 1))
	p.SetPayload([]byte("first"))

	cp := p
	p.SetPayload([]byte("second"))
	require.NoError(t, p.SetSource("N0CALL", 2))

	assert.Equal(t, []byte("first"), cp.Payload())
	call, _ := cp.Source()
	assert.Equal(t, "VU3EM ", call)
}
