package encoding

import (
	"errors"
	"fmt"

	"github.com/julianneswinoga/tracex-parser/internal/hexf"
	"github.com/rs/zerolog"
)

// Decoder walks the regions of a trace buffer in order: magic tag, control
// header, object registry and event buffer. Each step consumes the output of
// the previous one, so the methods must be called in that order.
type Decoder struct {
	buf      []byte
	off      int
	order    Order
	header   *ControlHeader
	log      zerolog.Logger
	warnings []error
}

// NewDecoder returns a decoder for buf. Non-fatal problems are logged to log
// and can be retrieved with Warnings.
func NewDecoder(buf []byte, log zerolog.Logger) *Decoder {
	return &Decoder{buf: buf, log: log}
}

// Header detects the byte order and reads the control header.
func (d *Decoder) Header() (ControlHeader, error) {
	order, off, err := DetectOrder(d.buf)
	if err != nil {
		return ControlHeader{}, err
	}
	hdr, off, err := ReadControlHeader(order, d.buf, off)
	if err != nil {
		return ControlHeader{}, fmt.Errorf("control header: %w", err)
	}
	d.order, d.off, d.header = order, off, &hdr
	d.log.Debug().
		Stringer("order", order).
		Uint16("name_size", hdr.ObjectNameSize).
		Uint32("buf_start", hdr.BufferStart).
		Uint32("buf_end", hdr.BufferEnd).
		Msg("read control header")
	return hdr, nil
}

// Objects reads the object registry following the control header.
func (d *Decoder) Objects() (Registry, error) {
	if d.header == nil {
		return nil, errors.New("object registry: control header not read")
	}
	reg, off, err := ReadObjectRegistry(d.order, d.buf, d.off, *d.header, func(w *DuplicateObjectWarning) {
		d.log.Warn().
			Str("ptr", hexf.Trim(w.Ptr)).
			Bytes("kept", w.Kept.Name).
			Bytes("dropped", w.Dropped.Name).
			Msg("duplicate object registry address")
		d.warnings = append(d.warnings, w)
	})
	if err != nil {
		return nil, err
	}
	d.off = off
	return reg, nil
}

// Events reads the event buffer following the object registry.
func (d *Decoder) Events() ([]RawEvent, error) {
	if d.header == nil {
		return nil, errors.New("events: control header not read")
	}
	events, off, err := ReadEvents(d.order, d.buf, d.off, *d.header)
	if err != nil {
		return nil, err
	}
	d.off = off
	return events, nil
}

// Order returns the byte order detected by Header.
func (d *Decoder) Order() Order {
	return d.order
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.off
}

// Warnings returns the non-fatal problems seen so far.
func (d *Decoder) Warnings() []error {
	return d.warnings
}
