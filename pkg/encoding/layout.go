package encoding

import (
	"encoding/binary"
	"fmt"
)

// Order is the byte order of a trace buffer. It is determined once from the
// magic tag and used for every field that follows.
type Order uint8

const (
	BigEndian Order = iota
	LittleEndian
)

// String returns "big" or "little".
func (o Order) String() string {
	switch o {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ByteOrder returns the encoding/binary implementation of o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Kind is the wire type of a Field.
type Kind uint8

const (
	Uint8 Kind = iota + 1
	Uint16
	Uint32
	Bytes
)

// Field is a single member of a Layout.
type Field struct {
	Name string
	Kind Kind
	// Len is the width of a Bytes field, it is ignored for integer kinds.
	Len int
}

// size returns the number of bytes f occupies.
func (f Field) size() int {
	switch f.Kind {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Uint32:
		return 4
	case Bytes:
		return f.Len
	}
	return 0
}

// Layout is an ordered list of fields packed without any padding, the same
// way the target writes its trace structures.
type Layout []Field

// Size returns the number of bytes one record of l occupies.
func (l Layout) Size() int {
	var size int
	for _, f := range l {
		size += f.size()
	}
	return size
}

// Record holds the fields of one unpacked record by name.
type Record struct {
	ints  map[string]uint32
	bytes map[string][]byte
}

// Uint returns the integer field name, or 0 if r has no such field.
func (r Record) Uint(name string) uint32 {
	return r.ints[name]
}

// Bytes returns the byte field name, or nil if r has no such field.
func (r Record) Bytes(name string) []byte {
	return r.bytes[name]
}

// Unpack decodes one record of l from buf starting at off. It returns the
// record and the offset of the first byte after it. Byte fields are copied
// so the record does not alias buf.
func (l Layout) Unpack(order Order, buf []byte, off int) (Record, int, error) {
	size := l.Size()
	if off < 0 || off+size > len(buf) {
		return Record{}, off, &FormatError{
			Op:  "unpack",
			Msg: fmt.Sprintf("need %d bytes at offset %d, buffer has %d", size, off, len(buf)),
		}
	}

	bo := order.ByteOrder()
	r := Record{ints: make(map[string]uint32, len(l))}
	for _, f := range l {
		n := f.size()
		data := buf[off : off+n]
		switch f.Kind {
		case Uint8:
			r.ints[f.Name] = uint32(data[0])
		case Uint16:
			r.ints[f.Name] = uint32(bo.Uint16(data))
		case Uint32:
			r.ints[f.Name] = bo.Uint32(data)
		case Bytes:
			if r.bytes == nil {
				r.bytes = make(map[string][]byte)
			}
			r.bytes[f.Name] = append([]byte(nil), data...)
		}
		off += n
	}
	return r, off, nil
}
