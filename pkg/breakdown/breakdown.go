package breakdown

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/julianneswinoga/tracex-parser/pkg/events"
)

// ByEventType returns a breakdown of evs by event id.
func ByEventType(evs []events.Event) EventTypeBreakdown {
	breakdown := make(EventTypeBreakdown)
	for i, e := range evs {
		// Ticks until the next event are charged to this one.
		var ticks int64
		if i+1 < len(evs) {
			ticks = int64(evs[i+1].Timestamp - e.Timestamp)
		}
		breakdown[e.ID] = EventTypeSummary{
			ID:    e.ID,
			Name:  e.Name,
			Count: breakdown[e.ID].Count + 1,
			Ticks: breakdown[e.ID].Ticks + ticks,
		}
	}
	return breakdown
}

// EventTypeBreakdown breaks down a trace by event id.
type EventTypeBreakdown map[uint32]EventTypeSummary

// Sorted returns the summaries ordered by descending count. Ties are broken
// by ascending id.
func (b EventTypeBreakdown) Sorted() []EventTypeSummary {
	summaries := make([]EventTypeSummary, 0, len(b))
	for _, s := range b {
		summaries = append(summaries, s)
	}
	slices.SortFunc(summaries, func(x, y EventTypeSummary) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
	return summaries
}

// Total returns the number of events in b.
func (b EventTypeBreakdown) Total() int64 {
	var total int64
	for _, s := range b {
		total += s.Count
	}
	return total
}

// EventTypeSummary summarizes the occurrence of an event type inside of a trace.
type EventTypeSummary struct {
	// ID is the event id.
	ID uint32
	// Name is the service name, empty for unknown ids.
	Name string
	// Count is the number of times this event occurred in the trace.
	Count int64
	// Ticks is the time between events of this type and their successor.
	Ticks int64
}

// Label returns the service name, or the id for unknown events.
func (s EventTypeSummary) Label() string {
	if s.Name == "" {
		return strconv.FormatUint(uint64(s.ID), 10)
	}
	return s.Name
}
