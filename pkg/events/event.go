// Package events turns raw trace records into decoded events with named,
// resolved arguments.
package events

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianneswinoga/tracex-parser/internal/hexf"
	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
)

// Sentinel values with a fixed meaning.
const (
	// InterruptThread is the thread pointer of events emitted from ISRs.
	InterruptThread uint32 = 0xFFFFFFFF
	NoWait          uint32 = 0
	WaitForever     uint32 = 0xFFFFFFFF
)

// Value is a decoded argument.
type Value struct {
	Arg
	Raw uint32
	// Str replaces Raw when Resolved is true, e.g. an object name or a
	// timeout label.
	Str      string
	Resolved bool
}

// String returns Str for resolved values and Raw in hex otherwise.
func (v Value) String() string {
	if v.Resolved {
		return v.Str
	}
	return hexf.Trim(v.Raw)
}

// Event is a decoded trace event.
type Event struct {
	ThreadPtr      uint32
	ThreadPriority uint32
	ID             uint32
	Timestamp      uint32
	RawArgs        [4]uint32

	// Name is the service name of the event's schema, empty for unknown ids.
	Name string
	// Args pairs the schema's argument names with RawArgs, in order.
	Args [4]Value

	// ThreadName is the registry name of ThreadPtr, valid if ThreadResolved.
	ThreadName     string
	ThreadResolved bool
}

// Decode applies the schema for raw's id to raw. The custom map is
// consulted before the built-in table; unknown ids get anonymous arguments.
// Decode fails with an *EventShapeError if the selected schema is invalid.
func Decode(raw encoding.RawEvent, custom Map) (Event, error) {
	s, _ := Lookup(custom, raw.ID)
	if err := s.Validate(); err != nil {
		return Event{}, fmt.Errorf("event id %d: %w", raw.ID, err)
	}
	e := Event{
		ThreadPtr:      raw.ThreadPtr,
		ThreadPriority: raw.ThreadPriority,
		ID:             raw.ID,
		Timestamp:      raw.Timestamp,
		RawArgs:        raw.Info,
		Name:           s.Name,
	}
	for i, a := range s.Args {
		e.Args[i] = Value{Arg: a, Raw: raw.Info[i]}
	}
	return e, nil
}

// Arg returns the argument called name.
func (e *Event) Arg(name string) (Value, bool) {
	if i := e.argIndex(name); i >= 0 {
		return e.Args[i], true
	}
	return Value{}, false
}

func (e *Event) argIndex(name string) int {
	for i, v := range e.Args {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// IsUser returns true for application defined event ids.
func (e *Event) IsUser() bool {
	return e.ID >= UserEventStart
}

// Func returns the service name, or a placeholder naming the id for unknown
// events.
func (e *Event) Func() string {
	if e.Name == "" {
		return fmt.Sprintf("<TX ID#%d>", e.ID)
	}
	return e.Name
}

// Thread returns the thread name, or the thread pointer in decimal if it
// was not resolved.
func (e *Event) Thread() string {
	if e.ThreadResolved {
		return e.ThreadName
	}
	return strconv.FormatUint(uint64(e.ThreadPtr), 10)
}

// String formats e as "<timestamp>:<thread> <func>(<arg>=<value>,...)".
// Hidden arguments are omitted.
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(e.Timestamp), 10))
	sb.WriteByte(':')
	sb.WriteString(e.Thread())
	sb.WriteByte(' ')
	sb.WriteString(e.Func())
	sb.WriteByte('(')
	n := 0
	for _, v := range e.Args {
		if v.Hidden {
			continue
		}
		if n > 0 {
			sb.WriteByte(',')
		}
		n++
		sb.WriteString(v.Name)
		sb.WriteByte('=')
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
