package atomcell

import "unsafe"

// PaddedCell is a Cell padded out to CacheLineSize, so that adjacent
// elements of a []PaddedCell (one per worker, say) never share a cache
// line. It has the full Cell method set.
type PaddedCell[T Integer] struct {
	Cell[T]
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(uint32(0))%CacheLineSize) % CacheLineSize]byte
}

// NewPadded returns a padded cell initialized to v.
func NewPadded[T Integer](v T) *PaddedCell[T] {
	p := &PaddedCell[T]{}
	p.Store(v)
	return p
}
