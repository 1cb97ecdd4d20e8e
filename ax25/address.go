package ax25

import (
	"fmt"
	"strconv"
	"strings"
)

// AX.25 field sizes and defaults
const (
	CallsignLength   = 6   // Characters in an address callsign
	AddressLength    = 7   // Bytes in an encoded address field
	MaxDigipeaters   = 8   // Relay addresses a frame may carry over the radio
	MaxPayloadLength = 256 // Bytes of information field
	MaxFrameLength   = 352 // Largest frame the builder will emit
	ChecksumLength   = 2   // Bytes of FCS appended to a frame

	DefaultControl byte = 0x30
	DefaultPID     byte = 0xF0 // No layer 3

	ssidBase     byte = 0x60
	ssidMask     byte = 0x0F
	extensionBit byte = 0x01
)

// Address is one 7-byte AX.25 address field, exactly as it sits on the wire.
// Bytes 0-5 hold the callsign shifted left by one bit, byte 6 holds the SSID
// and, in its low bit, the address extension flag marking the last address
// of the chain.
type Address [AddressLength]byte

// Blank is the encoded empty address: six spaces, SSID 0.
var Blank = EncodeAddress("", 0)

// EncodeAddress packs callsign and ssid into an address field.
// Callsigns longer than six characters are truncated, shorter ones are
// padded with spaces. Only the low four bits of ssid are kept. The
// extension bit is always clear; see WithLast.
func EncodeAddress(callsign string, ssid byte) Address {
	var a Address
	for i := 0; i < CallsignLength; i++ {
		c := byte(' ')
		if i < len(callsign) {
			c = callsign[i]
		}
		a[i] = (c << 1) &^ extensionBit
	}
	a[CallsignLength] = (ssidBase | (ssid&ssidMask)<<1) &^ extensionBit
	return a
}

// DecodeAddress unpacks an address field. The callsign is always six
// characters long, padding included. last reports the extension bit.
func DecodeAddress(a Address) (callsign string, ssid byte, last bool) {
	var call [CallsignLength]byte
	for i := range call {
		call[i] = (a[i] >> 1) & 0x7F // Shift right to get ASCII value
	}
	return string(call[:]), a.SSID(), a.Last()
}

// Callsign returns the decoded callsign with padding removed.
func (a Address) Callsign() string {
	call, _, _ := DecodeAddress(a)
	return strings.TrimRight(call, " ")
}

// SSID returns the 4-bit station identifier.
func (a Address) SSID() byte {
	return (a[CallsignLength] >> 1) & ssidMask
}

// Last reports whether the address extension bit is set.
func (a Address) Last() bool {
	return a[CallsignLength]&extensionBit != 0
}

// WithLast returns a copy of a with the extension bit set or cleared.
func (a Address) WithLast(last bool) Address {
	if last {
		a[CallsignLength] |= extensionBit
	} else {
		a[CallsignLength] &^= extensionBit
	}
	return a
}

// String formats the address the way APRS text does: CALL, or CALL-N when
// the SSID is non-zero.
func (a Address) String() string {
	if ssid := a.SSID(); ssid > 0 {
		return fmt.Sprintf("%s-%d", a.Callsign(), ssid)
	}
	return a.Callsign()
}

// ParseAddress splits "CALL" or "CALL-N" text into callsign and SSID.
func ParseAddress(text string) (string, byte, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return "", 0, fmt.Errorf("empty callsign string")
	}

	call, ssidStr, found := strings.Cut(text, "-")
	if call == "" {
		return "", 0, fmt.Errorf("invalid callsign %q", text)
	}
	if !found {
		return call, 0, nil
	}

	ssid, err := strconv.ParseUint(ssidStr, 10, 8)
	if err != nil || ssid > uint64(ssidMask) {
		return "", 0, fmt.Errorf("invalid SSID in %q", text)
	}
	return call, byte(ssid), nil
}
