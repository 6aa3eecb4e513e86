// Package dicomio provides bounds-checked, endian-parameterized decoding of
// the low-level DICOM data types (integers, floats, strings, raw bytes) out
// of an in-memory byte slice.
package dicomio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// NativeByteOrder is unused by the reader itself (transfer syntax always
// pins an explicit byte order) but kept, as the teacher keeps it, for
// callers that want a default byte order. It is always little-endian,
// whatever the host machine's byte order.
var NativeByteOrder = binary.LittleEndian

// IsImplicitVR selects whether a 2-byte VR code precedes each element's
// length field, or whether the VR must instead be resolved from the
// dictionary.
type IsImplicitVR int

const (
	// ImplicitVR elements carry no inline VR; the dictionary supplies it.
	ImplicitVR IsImplicitVR = iota
	// ExplicitVR elements carry their VR inline.
	ExplicitVR
	// UnknownVR marks a decoder that was never handed a resolved transfer
	// syntax; reads against it are refused.
	UnknownVR
)

type stackEntry struct {
	limit int64
	err   error
}

// Decoder decodes low-level DICOM data types out of an owned, immutable
// byte slice. Every Read* method bounds-checks against both the slice length
// and the current PushLimit window, advances the cursor on success, and sets
// a sticky first-error (returning a zero value) on shortfall — it never
// panics on malformed input, only on violated decoder-usage invariants
// (mismatched Push/Pop calls), via DoAssert.
type Decoder struct {
	data      []byte
	pos       int64
	limit     int64
	err       error
	byteorder binary.ByteOrder
	implicit  IsImplicitVR

	stateStack []stackEntry
}

// NewDecoder creates a Decoder reading from data, starting at offset 0.
func NewDecoder(data []byte, byteorder binary.ByteOrder, implicit IsImplicitVR) *Decoder {
	return &Decoder{
		data:      data,
		pos:       0,
		limit:     int64(len(data)),
		byteorder: byteorder,
		implicit:  implicit,
	}
}

// TransferSyntax returns the decoder's current byte order and VR mode.
func (d *Decoder) TransferSyntax() (binary.ByteOrder, IsImplicitVR) {
	return d.byteorder, d.implicit
}

// SetTransferSyntax overrides the byte order and VR mode used by subsequent
// reads, without touching the cursor or limit stack.
func (d *Decoder) SetTransferSyntax(byteorder binary.ByteOrder, implicit IsImplicitVR) {
	d.byteorder = byteorder
	d.implicit = implicit
}

// SetError records err as the decoder's sticky error, if one isn't already
// set. REQUIRES: err != nil.
func (d *Decoder) SetError(err error) {
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s (offset %d)", err.Error(), d.pos)
	}
}

// SetErrorf is SetError with a printf-style format string.
func (d *Decoder) SetErrorf(format string, args ...interface{}) {
	d.SetError(fmt.Errorf(format, args...))
}

// Error returns the sticky error recorded so far, or nil.
func (d *Decoder) Error() error { return d.err }

// PushLimit temporarily narrows the readable window to the next n bytes,
// saving the old limit (and clearing any error) for PopLimit to restore.
func (d *Decoder) PushLimit(n int64) {
	newLimit := d.pos + n
	if newLimit > d.limit {
		d.SetError(fmt.Errorf("trying to read %d bytes beyond buffer end", newLimit-d.limit))
		newLimit = d.pos
	}
	d.stateStack = append(d.stateStack, stackEntry{limit: d.limit, err: d.err})
	d.limit = newLimit
	d.err = nil
}

// PopLimit restores the limit saved by the matching PushLimit, skipping over
// any bytes left unread within the narrowed window. An error saved by
// PushLimit is restored; if none was saved, an error raised inside the
// window stays set.
func (d *Decoder) PopLimit() {
	if d.pos < d.limit {
		d.Skip(int(d.limit - d.pos))
	}
	last := len(d.stateStack) - 1
	DoAssert(last >= 0, "PopLimit without matching PushLimit")
	d.limit = d.stateStack[last].limit
	if d.stateStack[last].err != nil {
		d.err = d.stateStack[last].err
	}
	d.stateStack = d.stateStack[:last]
}

// BytesRead returns the cumulative number of bytes consumed so far.
func (d *Decoder) BytesRead() int64 { return d.pos }

// Rewind resets the cursor to a position previously observed via
// BytesRead. It is used by the file-meta loop to back out of a header read
// that turned out to belong to the main dataset (spec.md §4.5's
// save-cursor-restore-on-foreign-group algorithm). It does not clear a
// sticky error.
func (d *Decoder) Rewind(pos int64) { d.pos = pos }

// Len returns the number of bytes left to read within the current limit.
func (d *Decoder) Len() int64 { return d.limit - d.pos }

// EOF reports whether there is no more data to read: a sticky error is set,
// the limit has been reached, or the underlying slice is exhausted.
func (d *Decoder) EOF() bool {
	if d.err != nil {
		return true
	}
	if d.limit-d.pos <= 0 {
		return true
	}
	return d.pos >= int64(len(d.data))
}

// ReadBytes reads exactly n bytes, or sets an error and returns nil if fewer
// remain.
func (d *Decoder) ReadBytes(n int) []byte {
	if d.implicit == UnknownVR {
		d.SetErrorf("ReadBytes: decoder has no resolved transfer syntax")
		return nil
	}
	if n < 0 || d.Len() < int64(n) || d.pos+int64(n) > int64(len(d.data)) {
		avail := int64(len(d.data)) - d.pos
		if d.Len() < avail {
			avail = d.Len()
		}
		d.SetErrorf("ReadBytes: requested %d, available %d", n, avail)
		return nil
	}
	v := d.data[d.pos : d.pos+int64(n)]
	d.pos += int64(n)
	out := make([]byte, n)
	copy(out, v)
	return out
}

// Skip advances the cursor by n bytes without returning them.
func (d *Decoder) Skip(n int) {
	if n < 0 || d.Len() < int64(n) {
		d.SetErrorf("Skip: requested %d, available %d", n, d.Len())
		return
	}
	d.pos += int64(n)
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() byte {
	b := d.ReadBytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadUInt16 reads a 16-bit unsigned integer in the decoder's byte order.
func (d *Decoder) ReadUInt16() uint16 {
	b := d.ReadBytes(2)
	if b == nil {
		return 0
	}
	return d.byteorder.Uint16(b)
}

// ReadUInt32 reads a 32-bit unsigned integer in the decoder's byte order.
func (d *Decoder) ReadUInt32() uint32 {
	b := d.ReadBytes(4)
	if b == nil {
		return 0
	}
	return d.byteorder.Uint32(b)
}

// ReadUInt64 reads a 64-bit unsigned integer in the decoder's byte order.
func (d *Decoder) ReadUInt64() uint64 {
	b := d.ReadBytes(8)
	if b == nil {
		return 0
	}
	return d.byteorder.Uint64(b)
}

// ReadInt16 reads a 16-bit signed integer in the decoder's byte order.
func (d *Decoder) ReadInt16() int16 {
	return int16(d.ReadUInt16())
}

// ReadInt32 reads a 32-bit signed integer in the decoder's byte order.
func (d *Decoder) ReadInt32() int32 {
	return int32(d.ReadUInt32())
}

// ReadInt64 reads a 64-bit signed integer in the decoder's byte order.
func (d *Decoder) ReadInt64() int64 {
	return int64(d.ReadUInt64())
}

// ReadFloat32 reads an IEEE-754 single-precision float in the decoder's byte
// order.
func (d *Decoder) ReadFloat32() float32 {
	return math.Float32frombits(d.ReadUInt32())
}

// ReadFloat64 reads an IEEE-754 double-precision float in the decoder's byte
// order.
func (d *Decoder) ReadFloat64() float64 {
	return math.Float64frombits(d.ReadUInt64())
}

// ReadString reads n bytes and returns them as-is, as a string. The reader
// treats text VRs as 7-bit ASCII (see package dcmkit); this method performs
// no charset transcoding.
func (d *Decoder) ReadString(n int) string {
	b := d.ReadBytes(n)
	if b == nil {
		return ""
	}
	return string(b)
}

// DoAssert panics if condition is false. It guards decoder-usage invariants
// (e.g. balanced Push/PopLimit), never malformed input — those are reported
// through SetError instead.
func DoAssert(condition bool, context ...interface{}) {
	if !condition {
		panic(fmt.Sprint(context...))
	}
}
