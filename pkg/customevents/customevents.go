// Package customevents loads schemas for application defined events from
// JSON files like
//
//	{"5000": {"name": "userEvent", "args": ["a", "b", "_c", "_d"]}}
//
// Keys are event ids in decimal or 0x hex. Arguments starting with an
// underscore are hidden and keep the underscore in their name, so "a" and
// "_a" are different arguments.
package customevents

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/julianneswinoga/tracex-parser/pkg/events"
)

type schemaJSON struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// Load reads the custom event file at path.
func Load(path string) (events.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read custom events: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a custom event file.
func Parse(data []byte) (events.Map, error) {
	var raw map[string]schemaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode custom events: %w", err)
	}
	m := make(events.Map, len(raw))
	for key, s := range raw {
		id, err := strconv.ParseUint(key, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("bad event id %q: %w", key, err)
		}
		args := make([]events.Arg, len(s.Args))
		for i, a := range s.Args {
			if strings.HasPrefix(a, "_") {
				args[i] = events.Hide(a)
			} else {
				args[i] = events.Show(a)
			}
		}
		schema, err := events.NewSchema(s.Name, args...)
		if err != nil {
			return nil, fmt.Errorf("event id %d: %w", id, err)
		}
		m[uint32(id)] = schema
	}
	return m, nil
}
