package events

import (
	"bytes"
	"errors"
	"testing"

	"github.com/julianneswinoga/tracex-parser/internal/trxtest"
	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	raw := encoding.RawEvent{
		ThreadPtr:      0x1000,
		ThreadPriority: 4,
		ID:             83,
		Timestamp:      77,
		Info:           [4]uint32{0x100, 0xFFFFFFFF, 2, 0x2000},
	}
	e, err := Decode(raw, nil)
	require.NoError(t, err)
	require.Equal(t, "semGet", e.Name)
	require.Equal(t, raw.Info, e.RawArgs)
	require.Equal(t, uint32(4), e.ThreadPriority)

	v, ok := e.Arg(Timeout)
	require.True(t, ok)
	require.Equal(t, uint32(0xFFFFFFFF), v.Raw)
	require.False(t, v.Resolved)

	_, ok = e.Arg("missing")
	require.False(t, ok)

	require.Equal(t, "77:4096 semGet(obj_id=0x100,timeout=0xffffffff,cur_cnt=0x2,stack_ptr=0x2000)", e.String())

	t.Run("Unknown", func(t *testing.T) {
		e, err := Decode(encoding.RawEvent{ThreadPtr: 1, ID: 4242, Timestamp: 3, Info: [4]uint32{1, 2, 3, 0xabc}}, nil)
		require.NoError(t, err)
		require.Equal(t, "3:1 <TX ID#4242>(arg1=0x1,arg2=0x2,arg3=0x3,arg4=0xabc)", e.String())
		require.True(t, e.IsUser())
	})

	t.Run("Hidden Args", func(t *testing.T) {
		e, err := Decode(encoding.RawEvent{ID: 6, Info: [4]uint32{1, 2, 3, 4}}, nil)
		require.NoError(t, err)
		require.Equal(t, "0:0 running()", e.String())
		require.False(t, e.IsUser())
	})

	t.Run("Bad Custom Schema", func(t *testing.T) {
		_, err := Decode(encoding.RawEvent{ID: 5000}, Map{5000: {Name: "broken"}})
		var se *EventShapeError
		require.True(t, errors.As(err, &se))
	})
}

func TestResolve(t *testing.T) {
	objects := encoding.Registry{
		0x1000: trxtest.Thread(0x1000, "main"),
		0x2000: trxtest.Thread(0x2000, "next"),
		0x3000: trxtest.Object(encoding.ObjectSemaphore, 0x3000, "sem"),
		0x4000: {Type: encoding.ObjectMutex, Pointer: 0x4000, Name: []byte{'m', 0xff}},
	}

	decode := func(t *testing.T, raw encoding.RawEvent) (Event, *Resolver, *bytes.Buffer) {
		t.Helper()
		var logs bytes.Buffer
		r := NewResolver(objects, zerolog.New(&logs))
		e, err := Decode(raw, nil)
		require.NoError(t, err)
		r.Resolve(&e)
		return e, r, &logs
	}

	t.Run("Thread Args", func(t *testing.T) {
		e, r, _ := decode(t, encoding.RawEvent{ThreadPtr: 0x1000, ID: 1, Timestamp: 5, Info: [4]uint32{0x1000, 3, 0xcafe, 0x2000}})
		require.Equal(t, "5:main threadResume(thread_ptr=main,prev_state=0x3,stack_ptr=0xcafe,next_thread=next)", e.String())
		require.Empty(t, r.Warnings())
	})

	t.Run("Interrupt", func(t *testing.T) {
		objects := encoding.Registry{0xFFFFFFFF: trxtest.Thread(0xFFFFFFFF, "impostor")}
		r := NewResolver(objects, zerolog.Nop())
		e, err := Decode(encoding.RawEvent{ThreadPtr: InterruptThread, ID: 3}, nil)
		require.NoError(t, err)
		r.Resolve(&e)
		require.True(t, e.ThreadResolved)
		require.Equal(t, "INTERRUPT", e.Thread())
	})

	t.Run("Timeouts", func(t *testing.T) {
		tests := []struct {
			raw  uint32
			want string
		}{
			{raw: 0, want: "NoWait"},
			{raw: 0xFFFFFFFF, want: "WaitForever"},
			{raw: 100, want: "0x64"},
		}
		for _, tt := range tests {
			e, _, _ := decode(t, encoding.RawEvent{ID: 52, Info: [4]uint32{0x3000, tt.raw}})
			v, ok := e.Arg(Timeout)
			require.True(t, ok)
			require.Equal(t, tt.want, v.String())
			require.Equal(t, tt.raw, v.Raw)
		}
	})

	t.Run("Registry Miss", func(t *testing.T) {
		e, r, logs := decode(t, encoding.RawEvent{ThreadPtr: 0x9999, ID: 82, Info: [4]uint32{0x5000, 0x10}})
		v, _ := e.Arg(ObjectID)
		require.False(t, v.Resolved)
		require.Equal(t, "0x5000", v.String())
		require.False(t, e.ThreadResolved)
		require.Equal(t, "39321", e.Thread())
		require.Empty(t, r.Warnings())
		require.Contains(t, logs.String(), "pointer not in object registry")
	})

	t.Run("Non ASCII Name", func(t *testing.T) {
		e, r, logs := decode(t, encoding.RawEvent{ThreadPtr: 0x4000, ID: 51, Info: [4]uint32{0x4000}})
		v, _ := e.Arg(ObjectID)
		require.False(t, v.Resolved)
		require.Equal(t, uint32(0x4000), v.Raw)
		require.False(t, e.ThreadResolved)
		require.Len(t, r.Warnings(), 2)
		var rw *ResolutionWarning
		require.True(t, errors.As(r.Warnings()[0], &rw))
		require.Equal(t, ObjectID, rw.Arg)
		require.Contains(t, logs.String(), "could not decode object name")
	})

	t.Run("Idempotent", func(t *testing.T) {
		e, r, _ := decode(t, encoding.RawEvent{ThreadPtr: 0x1000, ID: 83, Info: [4]uint32{0x3000, 0, 1, 2}})
		before := e
		r.Resolve(&e)
		require.Equal(t, before, e)
		require.Equal(t, "0:main semGet(obj_id=sem,timeout=NoWait,cur_cnt=0x1,stack_ptr=0x2)", e.String())
	})
}
