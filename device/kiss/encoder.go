package kiss

// Encode wraps an AX.25 frame (without FCS) into a KISS data frame for the
// given TNC port: FEND, type byte, escaped data, FEND.
func Encode(port byte, data []byte) []byte {
	return AppendEncode(make([]byte, 0, len(data)+4), port, data)
}

// AppendEncode is Encode appending to dst.
func AppendEncode(dst []byte, port byte, data []byte) []byte {
	dst = append(dst, FEND)
	dst = appendEscaped(dst, (port&0x0F)<<4|CmdDataFrame)
	for _, b := range data {
		dst = appendEscaped(dst, b)
	}
	return append(dst, FEND)
}

func appendEscaped(dst []byte, b byte) []byte {
	switch b {
	case FEND:
		return append(dst, FESC, TFEND)
	case FESC:
		return append(dst, FESC, TFESC)
	default:
		return append(dst, b)
	}
}
