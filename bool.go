package atomcell

import (
	"strconv"
)

// Bool is an atomic boolean backed by a 1-byte cell.
//
// The zero Bool is ready to use and holds false. Bool has no arithmetic;
// it supports Load, Store and the copy/move helpers only.
type Bool struct {
	c Cell[uint8]
}

// NewBool returns a Bool initialized to v.
func NewBool(v bool) *Bool {
	b := &Bool{}
	b.Store(v)
	return b
}

// Load returns the current value with the same fence guarantees as
// Cell.Load.
func (b *Bool) Load() bool {
	return b.c.Load() != 0
}

// Value is shorthand for Load.
func (b *Bool) Value() bool {
	return b.Load()
}

// Store replaces the value with v.
func (b *Bool) Store(v bool) {
	b.c.Store(b2u8(v))
}

// CopyFrom sets b to the current value of src. Copying onto itself does
// nothing.
func (b *Bool) CopyFrom(src *Bool) {
	b.c.CopyFrom(&src.c)
}

// Clone returns a new Bool holding the current value of b.
func (b *Bool) Clone() *Bool {
	return NewBool(b.Load())
}

// MoveFrom sets b to the current value of src and resets src to false.
// Moving onto itself does nothing.
func (b *Bool) MoveFrom(src *Bool) {
	b.c.MoveFrom(&src.c)
}

// String returns "true" or "false".
func (b *Bool) String() string {
	return strconv.FormatBool(b.Load())
}

//go:nosplit
func b2u8(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
