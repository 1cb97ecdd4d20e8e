package ax25

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeAddress(t *testing.T) {
	a := EncodeAddress("VU3EM", 1)
	assert.Equal(t, Address{'V' << 1, 'U' << 1, '3' << 1, 'E' << 1, 'M' << 1, ' ' << 1, 0x62}, a)
	assert.False(t, a.Last())

	cq := EncodeAddress("CQ", 0)
	assert.Equal(t, byte(0x60), cq[6])
	assert.Equal(t, byte(0x40), cq[2])
}

func TestEncodeAddressMasksSSID(t *testing.T) {
	a := EncodeAddress("N0CALL", 0xFF)
	assert.Equal(t, byte(15), a.SSID())
	assert.Equal(t, byte(0x60|0x1E), a[6])
}

func TestEncodeAddressTruncates(t *testing.T) {
	a := EncodeAddress("ABCDEFGHIJ", 3)
	assert.Equal(t, EncodeAddress("ABCDEF", 3), a)
	assert.Equal(t, "ABCDEF", a.Callsign())
}

func TestDecodeAddressRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		call := rapid.StringMatching(`[A-Z0-9]{0,6}`).Draw(t, "callsign")
		ssid := rapid.Byte().Draw(t, "ssid")

		gotCall, gotSSID, last := DecodeAddress(EncodeAddress(call, ssid))

		assert.Equal(t, call+strings.Repeat(" ", CallsignLength-len(call)), gotCall)
		assert.Equal(t, ssid&0x0F, gotSSID)
		assert.False(t, last)
	})
}

func TestEncodeAddressTruncatesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		call := rapid.StringMatching(`[A-Z0-9]{7,12}`).Draw(t, "callsign")
		gotCall, _, _ := DecodeAddress(EncodeAddress(call, 0))
		assert.Equal(t, call[:CallsignLength], gotCall)
	})
}

func TestWithLast(t *testing.T) {
	a := EncodeAddress("DIGI1", 1)
	set := a.WithLast(true)
	assert.True(t, set.Last())
	assert.Equal(t, byte(0x63), set[6])
	assert.False(t, a.Last(), "WithLast must not modify the receiver")
	assert.Equal(t, a, set.WithLast(false))

	_, ssid, last := DecodeAddress(set)
	assert.Equal(t, byte(1), ssid)
	assert.True(t, last)
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "VU3EM-1", EncodeAddress("VU3EM", 1).String())
	assert.Equal(t, "CQ", EncodeAddress("CQ", 0).String())
	assert.Equal(t, "", Blank.String())
}

func TestParseAddress(t *testing.T) {
	testCases := []struct {
		text string
		call string
		ssid byte
		err  bool
	}{
		{"VU3EM", "VU3EM", 0, false},
		{"DIGI1-1", "DIGI1", 1, false},
		{" WIDE2-15 ", "WIDE2", 15, false},
		{"", "", 0, true},
		{"-3", "", 0, true},
		{"N0CALL-16", "", 0, true},
		{"N0CALL-x", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			call, ssid, err := ParseAddress(tc.text)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.call, call)
			assert.Equal(t, tc.ssid, ssid)
		})
	}
}

func TestFCS(t *testing.T) {
	assert.Equal(t, uint16(0x906E), FCS([]byte("123456789")))
	assert.Equal(t, FCS([]byte{1, 2, 3}), FCS([]byte{1, 2, 3}))
	assert.NotEqual(t, FCS([]byte{1, 2, 3}), FCS([]byte{1, 2, 4}))
}
