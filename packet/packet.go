package packet

import (
	"ax25modem/ax25"
)

// Packet holds one AX.25 packet awaiting transmission. It is a fixed-size
// value: the relay chain and payload live in arrays, so copying a Packet
// copies everything and nothing is shared.
//
// Use New or Init before use; the zero value has blank control and PID
// fields and unencoded addresses.
type Packet struct {
	source      ax25.Address
	destination ax25.Address

	digipeaters    [ax25.MaxDigipeaters]ax25.Address
	numDigipeaters int

	control byte
	pid     byte

	payload       [ax25.MaxPayloadLength]byte
	payloadLength int
}

// New returns an initialized packet.
func New() Packet {
	var p Packet
	p.Init()
	return p
}

// Init resets every field to its default.
func (p *Packet) Init() {
	p.source = ax25.Blank
	p.destination = ax25.Blank
	for i := range p.digipeaters {
		p.digipeaters[i] = ax25.Blank
	}
	p.numDigipeaters = 0

	p.control = ax25.DefaultControl
	p.pid = ax25.DefaultPID

	clear(p.payload[:])
	p.payloadLength = 0
}

// SetSource sets the source address. An empty callsign leaves the field
// unchanged and returns ErrInvalidArgument.
func (p *Packet) SetSource(callsign string, ssid byte) error {
	if callsign == "" {
		return ErrInvalidArgument
	}
	p.source = ax25.EncodeAddress(callsign, ssid)
	return nil
}

// SetDestination sets the destination address. An empty callsign leaves
// the field unchanged and returns ErrInvalidArgument.
func (p *Packet) SetDestination(callsign string, ssid byte) error {
	if callsign == "" {
		return ErrInvalidArgument
	}
	p.destination = ax25.EncodeAddress(callsign, ssid)
	return nil
}

// AddDigipeater appends a relay to the chain and returns the new relay
// count. Only the newest relay carries the address extension bit.
func (p *Packet) AddDigipeater(callsign string, ssid byte) (int, error) {
	if callsign == "" {
		return 0, ErrInvalidArgument
	}
	return p.AddDigipeaterAddress(ax25.EncodeAddress(callsign, ssid))
}

// AddDigipeaterAddress appends an already encoded relay address. The
// extension bit of a is ignored; the chain invariant is applied instead.
func (p *Packet) AddDigipeaterAddress(a ax25.Address) (int, error) {
	if p.numDigipeaters >= ax25.MaxDigipeaters {
		return 0, ErrRelayChainFull
	}

	// The previous entry is no longer the last one
	if p.numDigipeaters > 0 {
		prev := &p.digipeaters[p.numDigipeaters-1]
		*prev = prev.WithLast(false)
	}

	p.digipeaters[p.numDigipeaters] = a.WithLast(true)
	p.numDigipeaters++
	return p.numDigipeaters, nil
}

// SetSourceAddress stores an encoded source address with its extension
// bit cleared.
func (p *Packet) SetSourceAddress(a ax25.Address) { p.source = a.WithLast(false) }

// SetDestinationAddress stores an encoded destination address with its
// extension bit cleared.
func (p *Packet) SetDestinationAddress(a ax25.Address) { p.destination = a.WithLast(false) }

// Source returns the decoded source callsign (six characters, space padded)
// and SSID.
func (p *Packet) Source() (string, byte) {
	call, ssid, _ := ax25.DecodeAddress(p.source)
	return call, ssid
}

// Destination returns the decoded destination callsign and SSID.
func (p *Packet) Destination() (string, byte) {
	call, ssid, _ := ax25.DecodeAddress(p.destination)
	return call, ssid
}

// Digipeater returns the decoded relay at index. last reports whether it is
// the final relay of the chain.
func (p *Packet) Digipeater(index int) (callsign string, ssid byte, last bool, err error) {
	if index < 0 || index >= p.numDigipeaters {
		return "", 0, false, ErrIndexOutOfRange
	}
	callsign, ssid, last = ax25.DecodeAddress(p.digipeaters[index])
	return callsign, ssid, last, nil
}

// SetPayload copies up to MaxPayloadLength bytes of data, silently dropping
// the rest, and returns the number of bytes kept.
func (p *Packet) SetPayload(data []byte) int {
	n := copy(p.payload[:], data)
	p.payloadLength = n
	return n
}

// SetControl sets the control field.
func (p *Packet) SetControl(control byte) { p.control = control }

// SetPID sets the protocol identifier field.
func (p *Packet) SetPID(pid byte) { p.pid = pid }

// SourceAddress returns the encoded source address.
func (p *Packet) SourceAddress() ax25.Address { return p.source }

// DestinationAddress returns the encoded destination address.
func (p *Packet) DestinationAddress() ax25.Address { return p.destination }

// DigipeaterAddress returns the encoded relay address at index.
func (p *Packet) DigipeaterAddress(index int) (ax25.Address, error) {
	if index < 0 || index >= p.numDigipeaters {
		return ax25.Address{}, ErrIndexOutOfRange
	}
	return p.digipeaters[index], nil
}

// NumDigipeaters returns the number of relays in the chain.
func (p *Packet) NumDigipeaters() int { return p.numDigipeaters }

// Control returns the control field.
func (p *Packet) Control() byte { return p.control }

// PID returns the protocol identifier field.
func (p *Packet) PID() byte { return p.pid }

// PayloadLength returns the number of payload bytes stored.
func (p *Packet) PayloadLength() int { return p.payloadLength }

// Payload returns the stored payload bytes. The slice aliases the packet;
// callers that keep it across mutations should copy it.
func (p *Packet) Payload() []byte { return p.payload[:p.payloadLength] }
