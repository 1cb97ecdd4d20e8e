package kiss

import (
	"bufio"
	"bytes"
	"io"
)

// KISS protocol constants
const (
	FEND  byte = 0xC0 // Frame End
	FESC  byte = 0xDB // Frame Escape
	TFEND byte = 0xDC // Transposed Frame End
	TFESC byte = 0xDD // Transposed Frame Escape

	CmdDataFrame byte = 0x00 // Low nibble of the type byte for data frames
)

// Decoder reads KISS frames from an io.Reader
type Decoder struct {
	r *bufio.Reader

	// A closing FEND also opens the next frame
	inFrame bool
}

// NewDecoder creates a new KISS frame decoder
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadFrame reads a single, complete KISS frame, type byte included.
// It handles FEND delimiters and FESC escaping
func (d *Decoder) ReadFrame() ([]byte, error) {
	var frame bytes.Buffer

	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}

		switch b {
		case FEND:
			if d.inFrame && frame.Len() > 0 {
				return frame.Bytes(), nil
			}
			// Start of frame, or FEND FEND between frames
			d.inFrame = true
		case FESC:
			if !d.inFrame {
				continue
			}
			b, err = d.r.ReadByte()
			if err != nil {
				return nil, err
			}
			switch b {
			case TFEND:
				frame.WriteByte(FEND)
			case TFESC:
				frame.WriteByte(FESC)
			default:
				// Protocol error, but we'll be lenient
				frame.WriteByte(b)
			}
		default:
			if d.inFrame {
				frame.WriteByte(b)
			}
		}
	}
}

// ReadDataFrame reads frames until a data frame arrives and returns its
// port and AX.25 contents.
func (d *Decoder) ReadDataFrame() (port byte, data []byte, err error) {
	for {
		frame, err := d.ReadFrame()
		if err != nil {
			return 0, nil, err
		}
		if frame[0]&0x0F != CmdDataFrame {
			continue
		}
		return frame[0] >> 4, frame[1:], nil
	}
}
