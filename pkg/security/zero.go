package security

import "unsafe"

// ZeroBytes overwrites the buffer so key material does not linger in memory.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroString overwrites the string's backing array in place. The string must
// not be shared with other holders.
func ZeroString(s *string) {
	if s == nil || len(*s) == 0 {
		return
	}
	data := unsafe.Slice(unsafe.StringData(*s), len(*s))
	ZeroBytes(data)
	*s = ""
}
