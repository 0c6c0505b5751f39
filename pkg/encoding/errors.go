package encoding

import "fmt"

// FormatError is returned when a buffer violates the structure of a trace.
// It is always fatal: no partial result accompanies it.
type FormatError struct {
	// Op is the decoding step that failed, e.g. "magic" or "events".
	Op  string
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trace format: %s: %s", e.Op, e.Msg)
}

// DuplicateObjectWarning reports a registry entry whose non-zero pointer was
// already claimed by an earlier entry. The earlier entry is kept.
type DuplicateObjectWarning struct {
	Ptr     uint32
	Kept    Object
	Dropped Object
}

func (w *DuplicateObjectWarning) Error() string {
	return fmt.Sprintf("object registry: %q has the same address %#x as %q, not overwriting",
		w.Dropped.Name, w.Ptr, w.Kept.Name)
}
