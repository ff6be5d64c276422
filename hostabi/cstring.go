package hostabi

import (
	"strings"
	"unicode/utf8"
	"unsafe"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Strlen returns the length of a NUL-terminated string.
func Strlen(s *byte) int {
	if s == nil {
		return 0
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(s), n)) != 0 {
		n++
	}
	return n
}

// GoString copies a NUL-terminated host string into a Go string.
// A nil pointer yields the empty string.
func GoString(s *byte) string {
	if s == nil {
		return ""
	}
	return string(unsafe.Slice(s, Strlen(s)))
}

// ArgvAt returns element i of a NUL-terminated pointer vector.
func ArgvAt(argv **byte, i int) *byte {
	return *(**byte)(unsafe.Add(unsafe.Pointer(argv), uintptr(i)*ptrSize))
}

// SetArgvAt stores element i of a pointer vector.
func SetArgvAt(argv **byte, i int, s *byte) {
	*(**byte)(unsafe.Add(unsafe.Pointer(argv), uintptr(i)*ptrSize)) = s
}

// ArgvLen counts the elements of a NUL-terminated pointer vector.
func ArgvLen(argv **byte) int {
	if argv == nil {
		return 0
	}
	n := 0
	for ArgvAt(argv, n) != nil {
		n++
	}
	return n
}

// ArgvStrings converts a NUL-terminated argument vector into Go strings.
// Entries that are not valid UTF-8 cannot be represented to handlers and
// are skipped.
func ArgvStrings(argv **byte) []string {
	if argv == nil {
		return nil
	}
	var args []string
	for i := 0; ; i++ {
		p := ArgvAt(argv, i)
		if p == nil {
			break
		}
		s := GoString(p)
		if !utf8.ValidString(s) {
			continue
		}
		args = append(args, s)
	}
	return args
}

// HasNUL reports whether s contains an embedded NUL byte and therefore
// cannot cross the boundary as a C string.
func HasNUL(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}
