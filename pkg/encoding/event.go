package encoding

import (
	"cmp"
	"slices"
)

// RawEvent is one undecoded entry of the event buffer.
type RawEvent struct {
	ThreadPtr      uint32
	ThreadPriority uint32
	// ID is the event type. Zero marks a slot that was never written.
	ID        uint32
	Timestamp uint32
	Info      [4]uint32
}

var eventLayout = Layout{
	{Name: "thread_ptr", Kind: Uint32},
	{Name: "thread_priority", Kind: Uint32},
	{Name: "event_id", Kind: Uint32},
	{Name: "time_stamp", Kind: Uint32},
	{Name: "info_field_1", Kind: Uint32},
	{Name: "info_field_2", Kind: Uint32},
	{Name: "info_field_3", Kind: Uint32},
	{Name: "info_field_4", Kind: Uint32},
}

// EventSize is the encoded size of a RawEvent.
var EventSize = eventLayout.Size()

// ReadEvents unpacks the event buffer starting at buf[off] and returns the
// written events ordered by timestamp, together with the offset following
// the buffer. The number of slots is derived from the header's buffer
// bounds, which must hold a whole number of events and lie within buf.
// Empty slots are dropped.
// Events with equal timestamps keep their order in the buffer.
func ReadEvents(order Order, buf []byte, off int, hdr ControlHeader) ([]RawEvent, int, error) {
	count, err := regionCount("events", hdr.BufferStart, hdr.BufferEnd, EventSize, len(buf)-off)
	if err != nil {
		return nil, off, err
	}

	events := make([]RawEvent, 0, count)
	for i := 0; i < count; i++ {
		r, next, err := eventLayout.Unpack(order, buf, off)
		if err != nil {
			return nil, off, err
		}
		off = next

		if r.Uint("event_id") == 0 {
			continue
		}
		events = append(events, RawEvent{
			ThreadPtr:      r.Uint("thread_ptr"),
			ThreadPriority: r.Uint("thread_priority"),
			ID:             r.Uint("event_id"),
			Timestamp:      r.Uint("time_stamp"),
			Info: [4]uint32{
				r.Uint("info_field_1"),
				r.Uint("info_field_2"),
				r.Uint("info_field_3"),
				r.Uint("info_field_4"),
			},
		})
	}

	slices.SortStableFunc(events, func(a, b RawEvent) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return events, off, nil
}
