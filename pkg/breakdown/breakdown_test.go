package breakdown

import (
	"testing"

	"github.com/julianneswinoga/tracex-parser/pkg/events"
	"github.com/stretchr/testify/require"
)

func TestByEventType(t *testing.T) {
	evs := []events.Event{
		{ID: 83, Name: "semGet", Timestamp: 0},
		{ID: 88, Name: "semPut", Timestamp: 10},
		{ID: 83, Name: "semGet", Timestamp: 15},
		{ID: 4242, Timestamp: 20},
		{ID: 88, Name: "semPut", Timestamp: 40},
		{ID: 83, Name: "semGet", Timestamp: 41},
	}

	// Break down the events by type.
	breakdown := ByEventType(evs)

	// Assert the number of event types.
	require.Equal(t, 3, len(breakdown))
	require.Equal(t, int64(6), breakdown.Total())

	// Spot check of type of event
	require.Equal(t, EventTypeSummary{ID: 83, Name: "semGet", Count: 3, Ticks: 15}, breakdown[83])
	require.Equal(t, EventTypeSummary{ID: 88, Name: "semPut", Count: 2, Ticks: 6}, breakdown[88])
	require.Equal(t, "4242", breakdown[4242].Label())
	require.Equal(t, "semPut", breakdown[88].Label())

	var labels []string
	for _, s := range breakdown.Sorted() {
		labels = append(labels, s.Label())
	}
	require.Equal(t, []string{"semGet", "semPut", "4242"}, labels)
}

func TestSortedTies(t *testing.T) {
	breakdown := ByEventType([]events.Event{{ID: 9}, {ID: 3}, {ID: 5}})
	var ids []uint32
	for _, s := range breakdown.Sorted() {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []uint32{3, 5, 9}, ids)
	require.Empty(t, ByEventType(nil).Sorted())
}
