package events

import (
	"fmt"
	"strings"
)

// EventShapeError is returned for a schema that does not name exactly four
// unique arguments. It indicates a programming error in the schema, not bad
// trace data.
type EventShapeError struct {
	Name string
	Args []Arg
}

func (e *EventShapeError) Error() string {
	names := make([]string, len(e.Args))
	for i, a := range e.Args {
		names[i] = fmt.Sprintf("%q", a.Name)
	}
	return fmt.Sprintf("schema %q must have exactly 4 unique, non-empty arguments: [%s]",
		e.Name, strings.Join(names, " "))
}

// ResolutionWarning reports a registry entry whose name could not be used
// in place of a pointer. The affected value keeps its raw form.
type ResolutionWarning struct {
	// Arg is the argument being resolved, or "thread" for the owning
	// thread of the event.
	Arg    string
	Ptr    uint32
	Reason string
}

func (w *ResolutionWarning) Error() string {
	return fmt.Sprintf("resolve %s %#x: %s", w.Arg, w.Ptr, w.Reason)
}
