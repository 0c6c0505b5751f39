package events

import (
	"github.com/julianneswinoga/tracex-parser/internal/hexf"
	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
	"github.com/rs/zerolog"
)

// registryArgs are the arguments holding object pointers.
var registryArgs = []string{ObjectID, ThreadPtr, NextThread}

// Resolver replaces pointers in decoded events by the names found in an
// object registry.
type Resolver struct {
	Objects encoding.Registry
	Log     zerolog.Logger

	warnings []error
}

// NewResolver returns a resolver for objects.
func NewResolver(objects encoding.Registry, log zerolog.Logger) *Resolver {
	return &Resolver{Objects: objects, Log: log}
}

// Resolve rewrites the pointer arguments, the owning thread and the timeout
// of e. Pointers missing from the registry are left as they are. Resolving
// works on the raw values, so resolving twice gives the same result.
func (r *Resolver) Resolve(e *Event) {
	for _, name := range registryArgs {
		i := e.argIndex(name)
		if i < 0 {
			continue
		}
		if s, ok := r.lookup(e, name, e.Args[i].Raw); ok {
			e.Args[i].Str, e.Args[i].Resolved = s, true
		}
	}

	if e.ThreadPtr == InterruptThread {
		e.ThreadName, e.ThreadResolved = "INTERRUPT", true
	} else if s, ok := r.lookup(e, "thread", e.ThreadPtr); ok {
		e.ThreadName, e.ThreadResolved = s, true
	}

	if i := e.argIndex(Timeout); i >= 0 {
		switch e.Args[i].Raw {
		case NoWait:
			e.Args[i].Str, e.Args[i].Resolved = "NoWait", true
		case WaitForever:
			e.Args[i].Str, e.Args[i].Resolved = "WaitForever", true
		}
	}
}

// Warnings returns the problems seen by Resolve, in order.
func (r *Resolver) Warnings() []error {
	return r.warnings
}

func (r *Resolver) lookup(e *Event, arg string, ptr uint32) (string, bool) {
	obj, ok := r.Objects[ptr]
	if !ok {
		r.Log.Debug().
			Str("arg", arg).
			Str("ptr", hexf.Trim(ptr)).
			Str("event", e.Func()).
			Msg("pointer not in object registry")
		return "", false
	}
	name, ok := obj.ASCIIName()
	if !ok {
		w := &ResolutionWarning{Arg: arg, Ptr: ptr, Reason: "object name is not ASCII"}
		r.Log.Warn().
			Str("arg", arg).
			Str("ptr", hexf.Trim(ptr)).
			Hex("name", obj.Name).
			Msg("could not decode object name")
		r.warnings = append(r.warnings, w)
		return "", false
	}
	return name, true
}
