package pprof

import (
	"bytes"
	"testing"

	"github.com/google/pprof/profile"
	"github.com/julianneswinoga/tracex-parser/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	evs := []events.Event{
		testEvent(0, 83, "semGet", "worker"),
		testEvent(10, 88, "semPut", "worker"),
		testEvent(15, 83, "semGet", "worker"),
		testEvent(20, 83, "semGet", "idle"),
		testEvent(40, 5000, "", "idle"),
		testEvent(41, 88, "semPut", "worker"),
	}

	var out bytes.Buffer
	err := Convert(evs, &out, Options{TickNanos: 1000})
	require.NoError(t, err)

	p, err := profile.Parse(&out)
	require.NoError(t, err)
	require.NoError(t, p.CheckValid())

	assert.Equal(t, "ticks", p.DefaultSampleType)
	assert.Equal(t, int64(41000), p.DurationNanos)
	require.Len(t, p.SampleType, 2)
	assert.Equal(t, "events", p.SampleType[0].Type)

	assert.Equal(t, []int64{2, 15}, values(samplesWithStack(p, "semGet", "thread worker")))
	assert.Equal(t, []int64{1, 20}, values(samplesWithStack(p, "semGet", "thread idle")))
	assert.Equal(t, []int64{2, 5}, values(samplesWithStack(p, "semPut", "thread worker")))
	assert.Equal(t, []int64{1, 1}, values(samplesWithStack(p, "<TX ID#5000>", "thread idle")))
	assert.Len(t, p.Sample, 4)
	// 3 services and 2 threads
	assert.Len(t, p.Function, 5)
}

func TestConvertEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Convert(nil, &out, Options{}))
	p, err := profile.Parse(&out)
	require.NoError(t, err)
	assert.Empty(t, p.Sample)
}

func testEvent(ts, id uint32, name, thread string) events.Event {
	return events.Event{
		ID:             id,
		Timestamp:      ts,
		Name:           name,
		ThreadName:     thread,
		ThreadResolved: true,
	}
}

func samplesWithStack(p *profile.Profile, stack ...string) (samples []*profile.Sample) {
outer:
	for _, s := range p.Sample {
		if len(s.Location) != len(stack) {
			continue
		}
		for i, l := range s.Location {
			if l.Line[0].Function.Name != stack[i] {
				continue outer
			}
		}
		samples = append(samples, s)
	}
	return
}

func values(samples []*profile.Sample) []int64 {
	sum := []int64{0, 0}
	for _, s := range samples {
		for i, v := range s.Value {
			sum[i] += v
		}
	}
	return sum
}
