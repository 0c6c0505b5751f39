package print

import (
	"io"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/julianneswinoga/tracex-parser/pkg/events"
)

// DefaultEventFilter returns a filter that matches all events.
func DefaultEventFilter() EventFilter {
	return EventFilter{MinTs: -1, MaxTs: -1}
}

// EventFilter is used to filter events.
type EventFilter struct {
	// MinTs prints events with a timestamp >= MinTs. If MinTs is -1, there
	// is no lower limit.
	MinTs int64
	// MaxTs prints events with a timestamp <= MaxTs. If MaxTs is -1, there
	// is no upper limit.
	MaxTs int64
	// Thread only prints events emitted by this thread. It matches the
	// thread name as well as the thread pointer in decimal or 0x hex. If
	// Thread is empty, events from all threads are printed.
	Thread string
	// IDs prints events with these ids. If IDs is empty, all events are
	// printed.
	IDs []uint32
	// JSON prints one JSON object per event instead of text.
	JSON bool
}

// Events prints all events in evs that match the given filter to w.
func Events(w io.Writer, evs []events.Event, filter EventFilter) error {
	enc := json.NewEncoder(w)
	for i := range evs {
		e := &evs[i]
		if !matchMinTs(e, filter.MinTs) ||
			!matchMaxTs(e, filter.MaxTs) ||
			!matchThread(e, filter.Thread) ||
			!matchIDs(e, filter.IDs) {
			continue
		}
		if filter.JSON {
			if err := enc.Encode(newJSONEvent(e)); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(w, e.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// matchMinTs returns true if e is >= minTs or minTs is -1.
func matchMinTs(e *events.Event, minTs int64) bool {
	return minTs == -1 || int64(e.Timestamp) >= minTs
}

// matchMaxTs returns true if e is <= maxTs or maxTs is -1.
func matchMaxTs(e *events.Event, maxTs int64) bool {
	return maxTs == -1 || int64(e.Timestamp) <= maxTs
}

// matchThread returns true if e was emitted by thread or thread is empty.
func matchThread(e *events.Event, thread string) bool {
	if thread == "" || e.Thread() == thread {
		return true
	}
	ptr, err := strconv.ParseUint(thread, 0, 32)
	return err == nil && uint32(ptr) == e.ThreadPtr
}

func matchIDs(e *events.Event, ids []uint32) bool {
	return len(ids) == 0 || slices.Contains(ids, e.ID)
}

// jsonEvent is the JSON form of an event. Resolved arguments are strings,
// unresolved ones numbers.
type jsonEvent struct {
	Timestamp uint32         `json:"ts"`
	Thread    string         `json:"thread"`
	ThreadPtr uint32         `json:"thread_ptr"`
	Priority  uint32         `json:"priority"`
	ID        uint32         `json:"id"`
	Func      string         `json:"func"`
	Args      map[string]any `json:"args"`
	Raw       [4]uint32      `json:"raw"`
}

func newJSONEvent(e *events.Event) jsonEvent {
	je := jsonEvent{
		Timestamp: e.Timestamp,
		Thread:    e.Thread(),
		ThreadPtr: e.ThreadPtr,
		Priority:  e.ThreadPriority,
		ID:        e.ID,
		Func:      e.Func(),
		Args:      make(map[string]any, len(e.Args)),
		Raw:       e.RawArgs,
	}
	for _, v := range e.Args {
		if v.Hidden {
			continue
		}
		if v.Resolved {
			je.Args[v.Name] = v.Str
		} else {
			je.Args[v.Name] = v.Raw
		}
	}
	return je
}
