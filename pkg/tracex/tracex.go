// Package tracex decodes TraceX trace buffers.
//
// A buffer is decoded in one pass: the byte order is taken from the magic
// tag, the control header locates the object registry and the event buffer,
// and every written event is decoded and resolved against the registry.
// Structural problems abort the decode, problems with single events only
// degrade the affected fields.
package tracex

import (
	"fmt"
	"os"

	"github.com/julianneswinoga/tracex-parser/pkg/anon"
	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
	"github.com/julianneswinoga/tracex-parser/pkg/events"
	"github.com/rs/zerolog"
)

// Options configures Parse.
type Options struct {
	// Custom maps application event ids to schemas. It takes precedence
	// over the built-in table.
	Custom events.Map
	// Logger receives warnings and debug output. Nil disables logging.
	Logger *zerolog.Logger
	// Anonymize obfuscates object names before they are used to resolve
	// events.
	Anonymize bool
}

// Trace is a decoded trace buffer.
type Trace struct {
	Order   encoding.Order
	Header  encoding.ControlHeader
	Objects encoding.Registry
	// Events are ordered by timestamp.
	Events []events.Event
	// Warnings holds the non-fatal problems found while decoding.
	Warnings []error
}

// DeltaTicks returns the ticks between the first and the last event.
func (t *Trace) DeltaTicks() uint32 {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Timestamp - t.Events[0].Timestamp
}

// Parse decodes buf.
func Parse(buf []byte, opts Options) (*Trace, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	// Reject bad schemas before decoding anything.
	if err := opts.Custom.Validate(); err != nil {
		return nil, fmt.Errorf("custom events: %w", err)
	}

	dec := encoding.NewDecoder(buf, log)
	hdr, err := dec.Header()
	if err != nil {
		return nil, err
	}
	objects, err := dec.Objects()
	if err != nil {
		return nil, err
	}
	raw, err := dec.Events()
	if err != nil {
		return nil, err
	}
	if opts.Anonymize {
		anon.Registry(objects)
	}

	res := events.NewResolver(objects, log)
	evs := make([]events.Event, 0, len(raw))
	for _, r := range raw {
		e, err := events.Decode(r, opts.Custom)
		if err != nil {
			return nil, err
		}
		res.Resolve(&e)
		evs = append(evs, e)
	}

	log.Debug().
		Int("events", len(evs)).
		Int("objects", len(objects)).
		Msg("decoded trace")

	return &Trace{
		Order:    dec.Order(),
		Header:   hdr,
		Objects:  objects,
		Events:   evs,
		Warnings: append(dec.Warnings(), res.Warnings()...),
	}, nil
}

// ReadFile reads and decodes the trace file at path.
func ReadFile(path string, opts Options) (*Trace, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return Parse(buf, opts)
}

// ParseFile decodes the trace file at path and returns its events, ordered
// by timestamp, and its object registry. custom may be nil.
func ParseFile(path string, custom events.Map) ([]events.Event, encoding.Registry, error) {
	t, err := ReadFile(path, Options{Custom: custom})
	if err != nil {
		return nil, nil, err
	}
	return t.Events, t.Objects, nil
}
