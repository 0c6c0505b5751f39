// Package trxtest builds synthetic trace buffers for tests.
package trxtest

import (
	"bytes"
	"encoding/binary"

	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
)

// BaseAddress is the target address the built buffers pretend to live at.
const BaseAddress = 0x20000000

// Builder assembles a trace buffer. The zero value builds a big endian
// buffer without objects or events.
type Builder struct {
	Order    encoding.Order
	NameSize uint16
	Objects  []encoding.Object
	Events   []encoding.RawEvent
	// Empty is the number of zero slots appended after Events.
	Empty int

	// RegistrySkew and EventsSkew are added to the region end addresses
	// written to the header, producing inconsistent layouts.
	RegistrySkew int
	EventsSkew   int
	// Magic replaces the magic tag when not empty.
	Magic []byte
}

// Bytes encodes the buffer.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	bo := b.Order.ByteOrder()
	put32 := func(v uint32) { _ = binary.Write(&buf, bo, v) }
	put16 := func(v uint16) { _ = binary.Write(&buf, bo, v) }

	// Write magic tag as a 32-bit word so it flips with the byte order.
	if b.Magic != nil {
		buf.Write(b.Magic)
	} else {
		put32(binary.BigEndian.Uint32([]byte(encoding.Magic)))
	}

	entrySize := 16 + int(b.NameSize)
	regStart := uint32(BaseAddress + 4 + encoding.ControlHeaderSize)
	regEnd := uint32(int(regStart) + len(b.Objects)*entrySize + b.RegistrySkew)
	bufStart := uint32(int(regStart) + len(b.Objects)*entrySize)
	slots := len(b.Events) + b.Empty
	bufEnd := uint32(int(bufStart) + slots*encoding.EventSize + b.EventsSkew)

	// Write control header
	put32(0xFFFFFFFF)  // timer valid mask
	put32(BaseAddress) // trace base address
	put32(regStart)
	put16(0) // reserved1
	put16(b.NameSize)
	put32(regEnd)
	put32(bufStart)
	put32(bufEnd)
	put32(bufStart) // buffer current
	put32(0)
	put32(0)
	put32(0)

	// Write object registry
	for _, o := range b.Objects {
		buf.WriteByte(o.Available)
		buf.WriteByte(byte(o.Type))
		buf.Write(o.Reserved[:])
		put32(o.Pointer)
		put32(o.Param1)
		put32(o.Param2)
		name := make([]byte, b.NameSize)
		copy(name, o.Name)
		buf.Write(name)
	}

	// Write events followed by empty slots
	for _, e := range b.Events {
		put32(e.ThreadPtr)
		put32(e.ThreadPriority)
		put32(e.ID)
		put32(e.Timestamp)
		for _, v := range e.Info {
			put32(v)
		}
	}
	buf.Write(make([]byte, b.Empty*encoding.EventSize))
	return buf.Bytes()
}

// Thread returns a registry entry for a thread named name at ptr.
func Thread(ptr uint32, name string) encoding.Object {
	return encoding.Object{Type: encoding.ObjectThread, Pointer: ptr, Name: []byte(name)}
}

// Object returns a registry entry of type typ named name at ptr.
func Object(typ encoding.ObjectType, ptr uint32, name string) encoding.Object {
	return encoding.Object{Type: typ, Pointer: ptr, Name: []byte(name)}
}
