// Package hexf formats unsigned integers as "0x" prefixed lowercase hex.
package hexf

import (
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Trim returns v without leading zeros, e.g. "0x1f".
func Trim[T constraints.Unsigned](v T) string {
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

// Padded returns v zero padded to the full width of T, e.g. "0x001f" for a
// uint16 and "0x0000001f" for a uint32.
func Padded[T constraints.Unsigned](v T) string {
	digits := int(unsafe.Sizeof(v)) * 2
	s := strconv.FormatUint(uint64(v), 16)
	return "0x" + strings.Repeat("0", digits-len(s)) + s
}
