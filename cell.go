// Package atomcell provides small fixed-size atomic cells for integral
// and boolean values.
//
// A cell owns exactly one value and exposes four indivisible primitives:
// Load, Store, Add and Sub. Every primitive is a single wait-free atomic
// instruction with sequentially consistent ordering; there are no locks,
// no retry loops and no weaker ordering modes.
//
// Copying and moving cells (CopyFrom, Clone, MoveFrom) is built only from
// Load and Store. Those helpers are not atomic as a whole: a value copied
// from a cell under concurrent mutation is some value the source held
// during the call, not necessarily the value at its start or end.
//
// Only 1-byte and 4-byte payloads are supported. Other widths are
// rejected by the Integer constraint at compile time.
package atomcell

import (
	"strconv"
)

// Integer is the set of payload types a Cell can hold: 1-byte and
// 4-byte integers. 2-byte and 8-byte types do not satisfy it.
type Integer interface {
	~int8 | ~uint8 | ~int32 | ~uint32
}

// Cell is an atomic container for a single value of type T.
//
// The zero Cell is ready to use and holds 0. A Cell must not be copied
// after first use; use CopyFrom or Clone instead.
//
// The value lives in one 32-bit word. A 1-byte T occupies the low byte,
// arithmetic runs on the full word and is truncated to T on every read,
// which is exactly T's two's-complement wraparound.
type Cell[T Integer] struct {
	_ noCopy
	w uint32
}

// Int is the conventional signed-integer cell.
type Int = Cell[int32]

// Int8 is a 1-byte signed cell.
type Int8 = Cell[int8]

// Uint8 is a 1-byte unsigned cell.
type Uint8 = Cell[uint8]

// Uint32 is a 4-byte unsigned cell.
type Uint32 = Cell[uint32]

// LoadMode names how Load reads a cell in this build: "native" for a
// plain atomic load, "rmw" for an interlocked add of zero
// (-tags atomcell_opt_rmw_loads).
func LoadMode() string {
	if rmwLoads {
		return "rmw"
	}
	return "native"
}

// New returns a cell initialized to v.
func New[T Integer](v T) *Cell[T] {
	c := &Cell[T]{}
	c.Store(v)
	return c
}

// Load returns the current value.
//
// The read is indivisible and acts as a full fence: every Store, Add or
// Sub that completed before the Load began, on any goroutine, is visible
// once it returns.
func (c *Cell[T]) Load() T {
	return T(loadWord(&c.w))
}

// Value is shorthand for Load.
func (c *Cell[T]) Value() T {
	return c.Load()
}

// Store replaces the value with v.
//
// Store is a native atomic store. It may run concurrently with any other
// operation on the cell; a concurrent Load observes either the old value
// or v, never a partial write.
func (c *Cell[T]) Store(v T) {
	storeWord(&c.w, uint32(v))
}

// Add atomically adds delta to the value. Concurrent Adds and Subs are
// never lost.
func (c *Cell[T]) Add(delta T) {
	addWord(&c.w, uint32(delta))
}

// Sub atomically subtracts delta from the value by adding its
// two's-complement negation.
func (c *Cell[T]) Sub(delta T) {
	addWord(&c.w, -uint32(delta))
}

// CopyFrom sets c to the current value of src. Copying a cell onto
// itself does nothing.
func (c *Cell[T]) CopyFrom(src *Cell[T]) {
	if c == src {
		return
	}
	c.Store(src.Load())
}

// Clone returns a new cell holding the current value of c. The clone has
// its own storage: later changes to either cell do not affect the other.
func (c *Cell[T]) Clone() *Cell[T] {
	return New(c.Load())
}

// MoveFrom sets c to the current value of src and resets src to 0.
// Moving a cell onto itself does nothing.
//
// The load from src and its reset are two separate atomic operations. An
// Add to src that lands between them is discarded by the reset.
func (c *Cell[T]) MoveFrom(src *Cell[T]) {
	if c == src {
		return
	}
	c.Store(src.Load())
	var zero T
	src.Store(zero)
}

// String formats the current value in base 10.
func (c *Cell[T]) String() string {
	v := c.Load()
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}
