package encoding

import (
	"encoding/binary"
	"fmt"
)

// Magic is the tag every trace buffer starts with.
const Magic = "TXTB"

var (
	// magicBig is Magic as read from a big endian buffer.
	magicBig = binary.BigEndian.Uint32([]byte(Magic))
	// magicLittle is Magic as it reads when a little endian buffer is
	// interpreted as big endian.
	magicLittle = binary.LittleEndian.Uint32([]byte(Magic))
)

// DetectOrder reads the magic tag at the start of buf and returns the byte
// order of the buffer and the offset following the tag. A buffer that does
// not start with the tag in either order is rejected with a FormatError.
func DetectOrder(buf []byte) (Order, int, error) {
	if len(buf) < len(Magic) {
		return 0, 0, &FormatError{Op: "magic", Msg: fmt.Sprintf("buffer too short: %d bytes", len(buf))}
	}
	switch id := binary.BigEndian.Uint32(buf); id {
	case magicBig:
		return BigEndian, len(Magic), nil
	case magicLittle:
		return LittleEndian, len(Magic), nil
	default:
		return 0, 0, &FormatError{Op: "magic", Msg: fmt.Sprintf("invalid magic number: %#x", id)}
	}
}

// ControlHeader describes the regions of a trace buffer. Addresses are in
// the target's address space, only their differences are meaningful here.
type ControlHeader struct {
	TimerValidMask      uint32
	TraceBaseAddress    uint32
	ObjectRegistryStart uint32
	Reserved1           uint16
	ObjectNameSize      uint16
	ObjectRegistryEnd   uint32
	BufferStart         uint32
	BufferEnd           uint32
	BufferCurrent       uint32
	Reserved2           uint32
	Reserved3           uint32
	Reserved4           uint32
}

var controlHeaderLayout = Layout{
	{Name: "timer_valid_mask", Kind: Uint32},
	{Name: "trace_base_address", Kind: Uint32},
	{Name: "obj_reg_start_pointer", Kind: Uint32},
	{Name: "reserved1", Kind: Uint16},
	{Name: "obj_reg_name_size", Kind: Uint16},
	{Name: "obj_reg_end_pointer", Kind: Uint32},
	{Name: "buf_start_ptr", Kind: Uint32},
	{Name: "buf_end_ptr", Kind: Uint32},
	{Name: "buf_cur_ptr", Kind: Uint32},
	{Name: "reserved2", Kind: Uint32},
	{Name: "reserved3", Kind: Uint32},
	{Name: "reserved4", Kind: Uint32},
}

// ControlHeaderSize is the encoded size of a ControlHeader.
var ControlHeaderSize = controlHeaderLayout.Size()

// ReadControlHeader unpacks the control header at buf[off] and returns it
// with the offset following it. The region bounds are not validated here,
// that is left to the readers consuming them.
func ReadControlHeader(order Order, buf []byte, off int) (ControlHeader, int, error) {
	r, next, err := controlHeaderLayout.Unpack(order, buf, off)
	if err != nil {
		return ControlHeader{}, off, err
	}
	return ControlHeader{
		TimerValidMask:      r.Uint("timer_valid_mask"),
		TraceBaseAddress:    r.Uint("trace_base_address"),
		ObjectRegistryStart: r.Uint("obj_reg_start_pointer"),
		Reserved1:           uint16(r.Uint("reserved1")),
		ObjectNameSize:      uint16(r.Uint("obj_reg_name_size")),
		ObjectRegistryEnd:   r.Uint("obj_reg_end_pointer"),
		BufferStart:         r.Uint("buf_start_ptr"),
		BufferEnd:           r.Uint("buf_end_ptr"),
		BufferCurrent:       r.Uint("buf_cur_ptr"),
		Reserved2:           r.Uint("reserved2"),
		Reserved3:           r.Uint("reserved3"),
		Reserved4:           r.Uint("reserved4"),
	}, next, nil
}

// regionCount returns how many records of size bytes fit exactly between
// start and end. The region must also fit into the avail bytes left in the
// buffer, so a corrupt header cannot request more records than exist.
func regionCount(op string, start, end uint32, size, avail int) (int, error) {
	if end < start {
		return 0, &FormatError{Op: op, Msg: fmt.Sprintf("region end %#x is before start %#x", end, start)}
	}
	span := uint64(end - start)
	if span%uint64(size) != 0 {
		return 0, &FormatError{Op: op, Msg: fmt.Sprintf("range does not match record size: %d, %d", span, size)}
	}
	if span > uint64(max(avail, 0)) {
		return 0, &FormatError{Op: op, Msg: fmt.Sprintf("region exceeds buffer: %d bytes declared, %d left", span, max(avail, 0))}
	}
	return int(span / uint64(size)), nil
}
