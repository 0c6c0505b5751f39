package events

import (
	"fmt"
	"maps"
	"slices"
)

// Argument names that receive post-processing. Any other name is printed as
// is.
const (
	// ObjectID, ThreadPtr and NextThread are looked up in the object
	// registry and replaced by the object's name.
	ObjectID   = "obj_id"
	ThreadPtr  = "thread_ptr"
	NextThread = "next_thread"
	StackPtr   = "stack_ptr"
	QueuePtr   = "queue_ptr"
	// Timeout values NoWait and WaitForever are replaced by a label.
	Timeout = "timeout"
)

// UserEventStart is the first event id reserved for application events.
const UserEventStart = 4096

// Arg names one of the four information fields of an event.
type Arg struct {
	Name string
	// Hidden arguments are decoded but not printed.
	Hidden bool
}

// Show returns a visible argument named name.
func Show(name string) Arg { return Arg{Name: name} }

// Hide returns a hidden argument named name.
func Hide(name string) Arg { return Arg{Name: name, Hidden: true} }

// Schema describes how to interpret the information fields of one event
// type.
type Schema struct {
	// Name is the name of the kernel service that emitted the event.
	Name string
	Args [4]Arg
}

// NewSchema returns a schema for the service name with the given argument
// names. It fails with an *EventShapeError unless exactly four unique,
// non-empty names are given.
func NewSchema(name string, args ...Arg) (Schema, error) {
	if len(args) != 4 {
		return Schema{}, &EventShapeError{Name: name, Args: args}
	}
	s := Schema{Name: name, Args: [4]Arg(args)}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(name string, args ...Arg) Schema {
	s, err := NewSchema(name, args...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate returns an *EventShapeError if s does not name four unique,
// non-empty arguments.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Args))
	for _, a := range s.Args {
		if a.Name == "" || seen[a.Name] {
			return &EventShapeError{Name: s.Name, Args: s.Args[:]}
		}
		seen[a.Name] = true
	}
	return nil
}

// Map maps event ids to schemas.
type Map map[uint32]Schema

// Validate checks every schema of m, in ascending id order.
func (m Map) Validate() error {
	for _, id := range slices.Sorted(maps.Keys(m)) {
		if err := m[id].Validate(); err != nil {
			return fmt.Errorf("event id %d: %w", id, err)
		}
	}
	return nil
}

// unknown is used for ids neither the custom map nor the built-in table
// know about.
var unknown = Schema{Args: [4]Arg{Show("arg1"), Show("arg2"), Show("arg3"), Show("arg4")}}

// Lookup returns the schema for id. The custom map is consulted first, then
// the built-in table. The second result is false if neither has an entry, in
// which case an anonymous schema is returned.
func Lookup(custom Map, id uint32) (Schema, bool) {
	if s, ok := custom[id]; ok {
		return s, true
	}
	if s, ok := builtin[id]; ok {
		return s, true
	}
	return unknown, false
}

// Builtin returns the built-in schema for id.
func Builtin(id uint32) (Schema, bool) {
	s, ok := builtin[id]
	return s, ok
}

// BuiltinIDs returns the ids of all built-in schemas in ascending order.
func BuiltinIDs() []uint32 {
	return slices.Sorted(maps.Keys(builtin))
}

// builtin follows the event ids of tx_trace.h.
var builtin = Map{
	1:   MustSchema("threadResume", Show(ThreadPtr), Show("prev_state"), Show(StackPtr), Show(NextThread)),
	2:   MustSchema("threadSuspend", Show(ThreadPtr), Show("new_state"), Show(StackPtr), Show(NextThread)),
	3:   MustSchema("isrEnter", Show(StackPtr), Show("isr_num"), Show("sys_state"), Show("preempt_dis")),
	4:   MustSchema("isrExit", Show(StackPtr), Show("isr_num"), Show("sys_state"), Show("preempt_dis")),
	5:   MustSchema("timeSlice", Show("nxt_thread"), Show("sys_state"), Show("preempt_disable"), Show(StackPtr)),
	6:   MustSchema("running", Hide("arg1"), Hide("arg2"), Hide("arg3"), Hide("arg4")),
	10:  MustSchema("blockAlloc", Show("pool_ptr"), Show("mem_ptr"), Show(Timeout), Show("rem_blocks")),
	17:  MustSchema("blockRelease", Show("pool_ptr"), Show("mem_ptr"), Show("suspended"), Show(StackPtr)),
	27:  MustSchema("byteRelease", Show("pool_ptr"), Show("mem_ptr"), Show("suspended"), Show("avail_bytes")),
	32:  MustSchema("flagsGet", Show("group_ptr"), Show("req_flags"), Show("cur_flags"), Show("get_opt")),
	36:  MustSchema("flagsSet", Show("group_ptr"), Show("flags"), Show("set_opt"), Show("suspend_cnt")),
	50:  MustSchema("mtxCreate", Show(ObjectID), Show("inheritance"), Show(StackPtr), Hide("arg4")),
	51:  MustSchema("mtxDel", Show(ObjectID), Show(StackPtr), Hide("arg3"), Hide("arg4")),
	52:  MustSchema("mtxGet", Show(ObjectID), Show(Timeout), Hide("arg3"), Hide("arg4")),
	56:  MustSchema("mtxPrioritize", Show(ObjectID), Show("suspend_cnt"), Show(StackPtr), Hide("arg4")),
	57:  MustSchema("mtxPut", Show(ObjectID), Show("owning_thread"), Show("own_cnt"), Show(StackPtr)),
	68:  MustSchema("queueReceive", Show(QueuePtr), Show("dst_ptr"), Show(Timeout), Show("enqueued")),
	69:  MustSchema("queueSend", Show(QueuePtr), Show("src_ptr"), Show(Timeout), Show("enqueued")),
	80:  MustSchema("semCeilPut", Show(ObjectID), Show("cur_cnt"), Show("suspend_cnt"), Show("ceiling")),
	82:  MustSchema("semDel", Show(ObjectID), Show(StackPtr), Hide("arg3"), Hide("arg4")),
	83:  MustSchema("semGet", Show(ObjectID), Show(Timeout), Show("cur_cnt"), Show(StackPtr)),
	88:  MustSchema("semPut", Show(ObjectID), Show("cur_cnt"), Show("suspend_cnt"), Show(StackPtr)),
	101: MustSchema("threadDelete", Show(ThreadPtr), Show(StackPtr), Hide("arg3"), Hide("arg4")),
	103: MustSchema("threadIdentify", Hide("arg1"), Hide("arg2"), Hide("arg3"), Hide("arg4")),
	107: MustSchema("preemptionChange", Show("next_ctx"), Show("new_thresh"), Show("old_thresh"), Show("thread_state")),
	109: MustSchema("threadRelinquish", Show(StackPtr), Show(NextThread), Hide("arg3"), Hide("arg4")),
	112: MustSchema("threadSleep", Show("sleep_val"), Show("thread_state"), Show(StackPtr), Hide("arg4")),
	115: MustSchema("threadTerminate", Show(ThreadPtr), Show("thread_state"), Show(StackPtr), Hide("arg4")),
	120: MustSchema("getTicks", Show("cur_ticks"), Show("next_ctx"), Hide("arg3"), Hide("arg4")),
}
