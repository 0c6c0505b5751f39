package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := NewSchema("custEvent", Show("line_num"), Show(ObjectID), Show("fd"), Hide("arg4"))
		require.NoError(t, err)
		require.Equal(t, "custEvent", s.Name)
		require.Equal(t, Arg{Name: "arg4", Hidden: true}, s.Args[3])
	})

	tests := []struct {
		name string
		args []Arg
	}{
		{name: "too few", args: []Arg{Show("a"), Show("b"), Show("c")}},
		{name: "too many", args: []Arg{Show("a"), Show("b"), Show("c"), Show("d"), Show("e")}},
		{name: "duplicate", args: []Arg{Show("a"), Show("b"), Show("a"), Show("d")}},
		{name: "empty name", args: []Arg{Show("a"), Show(""), Show("c"), Show("d")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema("bad", tt.args...)
			var se *EventShapeError
			require.True(t, errors.As(err, &se))
			require.Equal(t, "bad", se.Name)
		})
	}

	t.Run("Must Panics", func(t *testing.T) {
		require.Panics(t, func() { MustSchema("bad", Show("a")) })
	})
}

func TestMapValidate(t *testing.T) {
	require.NoError(t, Map(nil).Validate())

	m := Map{
		5000: MustSchema("ok", Show("a"), Show("b"), Show("c"), Show("d")),
		5001: {Name: "zero"},
	}
	err := m.Validate()
	var se *EventShapeError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "zero", se.Name)
	require.ErrorContains(t, err, "event id 5001")
}

func TestBuiltin(t *testing.T) {
	ids := BuiltinIDs()
	require.Len(t, ids, 29)
	for _, id := range ids {
		s, ok := Builtin(id)
		require.True(t, ok)
		assert.NoError(t, s.Validate(), "id %d", id)
		assert.NotEmpty(t, s.Name, "id %d", id)
		assert.Less(t, id, uint32(UserEventStart))
	}

	s, ok := Builtin(83)
	require.True(t, ok)
	require.Equal(t, "semGet", s.Name)
	require.Equal(t, [4]Arg{Show(ObjectID), Show(Timeout), Show("cur_cnt"), Show(StackPtr)}, s.Args)

	_, ok = Builtin(0)
	require.False(t, ok)
}

func TestLookup(t *testing.T) {
	custom := Map{
		83:   MustSchema("mySemGet", Show(ObjectID), Show("a"), Show("b"), Show("c")),
		5000: MustSchema("uartOpen", Show("line_num"), Hide("arg2"), Hide("arg3"), Hide("arg4")),
	}

	s, ok := Lookup(custom, 83)
	require.True(t, ok)
	require.Equal(t, "mySemGet", s.Name)

	s, ok = Lookup(custom, 5000)
	require.True(t, ok)
	require.Equal(t, "uartOpen", s.Name)

	s, ok = Lookup(nil, 83)
	require.True(t, ok)
	require.Equal(t, "semGet", s.Name)

	s, ok = Lookup(custom, 4242)
	require.False(t, ok)
	require.Equal(t, "", s.Name)
	require.Equal(t, "arg1", s.Args[0].Name)
}
