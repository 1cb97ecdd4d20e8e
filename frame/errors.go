package frame

import "errors"

var (
	// ErrFrameTooLong indicates a frame larger than ax25.MaxFrameLength, or
	// a payload larger than ax25.MaxPayloadLength.
	ErrFrameTooLong = errors.New("frame too long")
	// ErrFrameTooShort indicates a frame truncated before its address chain,
	// control fields or checksum end.
	ErrFrameTooShort = errors.New("frame too short")
	// ErrChecksum indicates the trailing check value does not match.
	ErrChecksum = errors.New("checksum mismatch")
	// ErrAddressChain indicates a malformed address extension chain.
	ErrAddressChain = errors.New("malformed address chain")
)
