// Package frame serializes packets into AX.25 link-layer frames and back.
//
// A frame is laid out as
//
//	Destination(7) | Source(7) | Digipeaters(0-8 x 7) | [Control(1) PID(1)] | Payload(0-256) | FCS(2)
//
// The address extension bit is set on the last address block only: the
// source when there are no digipeaters, otherwise the final digipeater.
// Control and PID are emitted only by builders created WithControlFields.
// The FCS covers everything before it and is written low byte first.
// Bit stuffing and HDLC flags are left to the modem.
package frame

import (
	"encoding/binary"

	"ax25modem/ax25"
	"ax25modem/packet"
)

// ChecksumFunc computes the 16-bit check value appended to a frame.
type ChecksumFunc func(data []byte) uint16

// Option configures a Builder.
type Option func(*Builder)

// WithChecksum replaces the default AX.25 FCS.
func WithChecksum(sum ChecksumFunc) Option {
	return func(b *Builder) {
		b.checksum = sum
	}
}

// WithControlFields makes the builder emit the control and PID bytes
// between the address chain and the payload, as a UI frame carries them.
func WithControlFields() Option {
	return func(b *Builder) {
		b.controlFields = true
	}
}

// Builder turns packets into frames. A Builder holds no per-frame state and
// may be shared.
type Builder struct {
	checksum      ChecksumFunc
	controlFields bool
}

// NewBuilder creates a Builder using ax25.FCS unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{checksum: ax25.FCS}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build serializes p with the default builder.
func Build(p *packet.Packet) ([]byte, error) {
	return defaultBuilder.Build(p)
}

// Parse decodes a frame produced by Build.
func Parse(data []byte) (packet.Packet, error) {
	return defaultBuilder.Parse(data)
}

// Length returns the number of bytes Build would produce for p.
func (b *Builder) Length(p *packet.Packet) int {
	n := 2*ax25.AddressLength + p.NumDigipeaters()*ax25.AddressLength
	if b.controlFields {
		n += 2
	}
	return n + p.PayloadLength() + ax25.ChecksumLength
}

// Build serializes p into a newly allocated frame.
func (b *Builder) Build(p *packet.Packet) ([]byte, error) {
	if p == nil {
		return nil, packet.ErrInvalidArgument
	}
	return b.Append(make([]byte, 0, b.Length(p)), p)
}

// Append serializes p onto dst and returns the extended slice. Nothing is
// allocated when dst has room for the frame. On error dst is returned
// unchanged.
func (b *Builder) Append(dst []byte, p *packet.Packet) ([]byte, error) {
	if p == nil {
		return dst, packet.ErrInvalidArgument
	}
	if b.Length(p) > ax25.MaxFrameLength {
		return dst, ErrFrameTooLong
	}

	start := len(dst)
	numDigis := p.NumDigipeaters()

	dest := p.DestinationAddress()
	dst = append(dst, dest[:]...)

	// With no digipeaters the source is the last address in the chain
	src := p.SourceAddress().WithLast(numDigis == 0)
	dst = append(dst, src[:]...)

	for i := 0; i < numDigis; i++ {
		digi, err := p.DigipeaterAddress(i)
		if err != nil {
			return dst[:start], err
		}
		digi = digi.WithLast(i == numDigis-1)
		dst = append(dst, digi[:]...)
	}

	if b.controlFields {
		dst = append(dst, p.Control(), p.PID())
	}
	dst = append(dst, p.Payload()...)

	fcs := b.checksum(dst[start:])
	return binary.LittleEndian.AppendUint16(dst, fcs), nil
}

// Parse verifies the checksum of data and rebuilds the packet it carries.
// Address fields are restored byte for byte.
func (b *Builder) Parse(data []byte) (packet.Packet, error) {
	minLen := 2*ax25.AddressLength + ax25.ChecksumLength
	if b.controlFields {
		minLen += 2
	}
	if len(data) < minLen {
		return packet.Packet{}, ErrFrameTooShort
	}
	if len(data) > ax25.MaxFrameLength {
		return packet.Packet{}, ErrFrameTooLong
	}

	body := data[:len(data)-ax25.ChecksumLength]
	if got := binary.LittleEndian.Uint16(data[len(body):]); got != b.checksum(body) {
		return packet.Packet{}, ErrChecksum
	}

	p := packet.New()

	dest := addressAt(body, 0)
	if dest.Last() {
		return packet.Packet{}, ErrAddressChain
	}
	p.SetDestinationAddress(dest)

	src := addressAt(body, ax25.AddressLength)
	p.SetSourceAddress(src)

	// Find end of address path (LSB check)
	pos := 2 * ax25.AddressLength
	last := src.Last()
	for !last {
		if pos+ax25.AddressLength > len(body) {
			return packet.Packet{}, ErrFrameTooShort
		}
		digi := addressAt(body, pos)
		if _, err := p.AddDigipeaterAddress(digi); err != nil {
			return packet.Packet{}, ErrAddressChain
		}
		pos += ax25.AddressLength
		last = digi.Last()
	}

	if b.controlFields {
		if pos+2 > len(body) {
			return packet.Packet{}, ErrFrameTooShort
		}
		p.SetControl(body[pos])
		p.SetPID(body[pos+1])
		pos += 2
	}

	payload := body[pos:]
	if len(payload) > ax25.MaxPayloadLength {
		return packet.Packet{}, ErrFrameTooLong
	}
	p.SetPayload(payload)

	return p, nil
}

func addressAt(data []byte, offset int) ax25.Address {
	var a ax25.Address
	copy(a[:], data[offset:offset+ax25.AddressLength])
	return a
}
