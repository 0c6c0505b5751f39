package anon

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
)

// KernelNames are object names created by the kernel and its middleware
// itself. They carry no application detail and are kept as they are.
var KernelNames = []string{
	"System Timer Thread",
	"NetX IP Instance",
	"NetX Packet Pool",
	"FileX Media",
}

// Registry obfuscates the names of all objects in reg, except for the
// KernelNames.
func Registry(reg encoding.Registry) {
	for _, obj := range reg {
		Bytes(obj.Name, KernelNames)
	}
}

// Bytes obfuscates the object name s in place by replacing all upper and
// lower case letters with "X" and "x" respectively. Names listed in keep are
// not modified. Digits, spaces and punctuation are kept so that numbered
// objects like "thread 3" stay distinguishable.
func Bytes(s []byte, keep []string) {
	if len(s) == 0 {
		return
	}
	for _, k := range keep {
		if bytes.Equal(s, []byte(k)) {
			return
		}
	}
	obfuscate(s)
}

// obfuscate replaces all upper and lower case letters with "X" and "x"
// respectively.
func obfuscate(b []byte) {
	// iterate over all utf8 runes in b
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if unicode.IsUpper(r) {
			for j := 0; j < size; j++ {
				b[i+j] = 'X'
			}
		} else if unicode.IsLower(r) {
			for j := 0; j < size; j++ {
				b[i+j] = 'x'
			}
		}
		i += size
	}
}
