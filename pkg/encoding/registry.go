package encoding

import (
	"bytes"
	"fmt"
)

// ObjectType is the kind of kernel object a registry entry describes.
type ObjectType uint8

const (
	ObjectNone ObjectType = iota
	ObjectThread
	ObjectTimer
	ObjectQueue
	ObjectSemaphore
	ObjectMutex
	ObjectEventFlags
	ObjectBlockPool
	ObjectBytePool
	ObjectMedia
	ObjectIP
	ObjectPacketPool
	ObjectTCPSocket
	ObjectUDPSocket
)

var objectTypeNames = [...]string{
	ObjectNone:       "none",
	ObjectThread:     "thread",
	ObjectTimer:      "timer",
	ObjectQueue:      "queue",
	ObjectSemaphore:  "semaphore",
	ObjectMutex:      "mutex",
	ObjectEventFlags: "event_flags",
	ObjectBlockPool:  "block_pool",
	ObjectBytePool:   "byte_pool",
	ObjectMedia:      "media",
	ObjectIP:         "ip",
	ObjectPacketPool: "packet_pool",
	ObjectTCPSocket:  "tcp_socket",
	ObjectUDPSocket:  "udp_socket",
}

func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Object is one entry of the object registry.
type Object struct {
	Available uint8
	Type      ObjectType
	Reserved  [2]uint8
	Pointer   uint32
	Param1    uint32
	Param2    uint32
	// Name has its trailing NUL padding removed.
	Name []byte
}

// ASCIIName returns the name of o as a string, or false if the name contains
// bytes outside of 7-bit ASCII.
func (o Object) ASCIIName() (string, bool) {
	for _, b := range o.Name {
		if b >= 0x80 {
			return "", false
		}
	}
	return string(o.Name), true
}

// Registry maps non-zero object pointers to their registry entry.
type Registry map[uint32]Object

func objectLayout(nameSize int) Layout {
	return Layout{
		{Name: "obj_reg_entry_obj_available", Kind: Uint8},
		{Name: "obj_reg_entry_obj_type", Kind: Uint8},
		{Name: "reserved1", Kind: Uint8},
		{Name: "reserved2", Kind: Uint8},
		{Name: "thread_reg_entry_obj_ptr", Kind: Uint32},
		{Name: "obj_reg_entry_obj_parameter_1", Kind: Uint32},
		{Name: "obj_reg_entry_obj_parameter_2", Kind: Uint32},
		{Name: "thread_reg_entry_obj_name", Kind: Bytes, Len: nameSize},
	}
}

// ReadObjectRegistry unpacks the object registry that starts at buf[off]
// and returns it with the offset following the last entry. The number of
// entries is derived from the header's registry bounds, which must hold a
// whole number of entries and lie within buf.
//
// Entries with a zero pointer are read but not registered. When a non-zero
// pointer repeats, the first entry wins and onDup, if not nil, is called
// with the dropped entry.
func ReadObjectRegistry(order Order, buf []byte, off int, hdr ControlHeader, onDup func(*DuplicateObjectWarning)) (Registry, int, error) {
	layout := objectLayout(int(hdr.ObjectNameSize))
	count, err := regionCount("object registry", hdr.ObjectRegistryStart, hdr.ObjectRegistryEnd, layout.Size(), len(buf)-off)
	if err != nil {
		return nil, off, err
	}

	reg := make(Registry, count)
	for i := 0; i < count; i++ {
		r, next, err := layout.Unpack(order, buf, off)
		if err != nil {
			return nil, off, fmt.Errorf("object registry entry %d: %w", i, err)
		}
		off = next

		obj := Object{
			Available: uint8(r.Uint("obj_reg_entry_obj_available")),
			Type:      ObjectType(r.Uint("obj_reg_entry_obj_type")),
			Reserved:  [2]uint8{uint8(r.Uint("reserved1")), uint8(r.Uint("reserved2"))},
			Pointer:   r.Uint("thread_reg_entry_obj_ptr"),
			Param1:    r.Uint("obj_reg_entry_obj_parameter_1"),
			Param2:    r.Uint("obj_reg_entry_obj_parameter_2"),
			Name:      bytes.TrimRight(r.Bytes("thread_reg_entry_obj_name"), "\x00"),
		}
		if obj.Pointer == 0 {
			continue
		}
		if kept, ok := reg[obj.Pointer]; ok {
			if onDup != nil {
				onDup(&DuplicateObjectWarning{Ptr: obj.Pointer, Kept: kept, Dropped: obj})
			}
			continue
		}
		reg[obj.Pointer] = obj
	}
	return reg, off, nil
}
