package ax25

import "github.com/sigurn/crc16"

// The AX.25 frame check sequence is CRC-16/X.25: reflected CCITT polynomial,
// initial value 0xFFFF, final value inverted.
var fcsTable = crc16.MakeTable(crc16.CRC16_X_25)

// FCS computes the frame check sequence over data. It is sent low byte first.
func FCS(data []byte) uint16 {
	return crc16.Checksum(data, fcsTable)
}
