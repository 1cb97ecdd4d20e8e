package packet

import "errors"

var (
	// ErrInvalidArgument indicates a required input was absent.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRelayChainFull indicates the packet already carries the maximum
	// number of digipeaters.
	ErrRelayChainFull = errors.New("relay chain full")
	// ErrIndexOutOfRange indicates a digipeater index beyond the chain.
	ErrIndexOutOfRange = errors.New("digipeater index out of range")
)
