package pprof

import (
	"io"

	"github.com/google/pprof/profile"
	"github.com/julianneswinoga/tracex-parser/pkg/events"
)

// Options configures Convert.
type Options struct {
	// TickNanos is the length of a timer tick in nanoseconds. If it is 0,
	// the profile duration is left unset.
	TickNanos int64
}

// Convert writes a pprof profile for evs to w. Every event becomes a sample
// with the stack [service, thread], weighted by the ticks until the next
// event. evs must be ordered by timestamp.
func Convert(evs []events.Event, w io.Writer, opt Options) error {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "events", Unit: "count"},
			{Type: "ticks", Unit: "count"},
		},
		DefaultSampleType: "ticks",
		PeriodType:        &profile.ValueType{Type: "ticks", Unit: "count"},
		Period:            1,
	}
	if len(evs) > 1 && opt.TickNanos > 0 {
		p.DurationNanos = int64(evs[len(evs)-1].Timestamp-evs[0].Timestamp) * opt.TickNanos
	}

	sampleIdx := map[sampleKey]*profile.Sample{}
	locationIdx := map[string]*profile.Location{}

	location := func(name string) *profile.Location {
		loc, ok := locationIdx[name]
		if !ok {
			fn := &profile.Function{
				ID:         uint64(len(p.Function) + 1),
				Name:       name,
				SystemName: name,
			}
			p.Function = append(p.Function, fn)
			loc = &profile.Location{
				ID:   uint64(len(p.Location) + 1),
				Line: []profile.Line{{Function: fn}},
			}
			p.Location = append(p.Location, loc)
			locationIdx[name] = loc
		}
		return loc
	}

	for i := range evs {
		e := &evs[i]
		var ticks int64
		if i+1 < len(evs) {
			ticks = int64(evs[i+1].Timestamp - e.Timestamp)
		}

		key := sampleKey{Func: e.Func(), Thread: e.Thread()}
		sample, ok := sampleIdx[key]
		if !ok {
			// Locations are leaf first.
			sample = &profile.Sample{
				Location: []*profile.Location{
					location(key.Func),
					location(threadFrame(key.Thread)),
				},
				Value: []int64{0, 0},
				Label: map[string][]string{"thread": {key.Thread}},
			}
			p.Sample = append(p.Sample, sample)
			sampleIdx[key] = sample
		}
		sample.Value[0]++
		sample.Value[1] += ticks
	}

	return p.Write(w)
}

// threadFrame keeps thread frames apart from services with the same name.
func threadFrame(thread string) string {
	return "thread " + thread
}

type sampleKey struct {
	Func   string
	Thread string
}
