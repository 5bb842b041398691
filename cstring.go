package vkbind

import (
	"bytes"
	"strings"
	"unsafe"

	"golang.org/x/text/encoding/unicode"
)

// encodeString converts s to the NUL-terminated UTF-8 form the driver
// expects. Ill-formed UTF-8 is replaced rather than passed through; an
// embedded NUL cannot be represented and is rejected.
func encodeString(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, invalidArgument("string %q contains a NUL byte", s)
	}
	enc, err := unicode.UTF8.NewEncoder().String(s)
	if err != nil {
		return nil, invalidArgument("string %q: %v", s, err)
	}
	buf := make([]byte, len(enc)+1)
	copy(buf, enc)
	return buf, nil
}

// decodeFixed reads a name out of a fixed-size native buffer, stopping at
// the first NUL. Whatever follows the terminator is ignored; a buffer with
// no terminator is taken whole.
func decodeFixed(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

// encodeFixed writes s into dst with a terminator. dst is not cleared past
// the terminator.
func encodeFixed(dst []byte, s string) error {
	if len(s) >= len(dst) {
		return invalidArgument("string of %d bytes does not fit a %d byte field", len(s), len(dst))
	}
	if strings.IndexByte(s, 0) >= 0 {
		return invalidArgument("string %q contains a NUL byte", s)
	}
	copy(dst, s)
	dst[len(s)] = 0
	return nil
}

// goString copies a NUL-terminated string out of driver memory.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
