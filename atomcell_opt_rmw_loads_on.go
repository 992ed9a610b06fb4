//go:build atomcell_opt_rmw_loads

package atomcell

import (
	"sync/atomic"
)

const rmwLoads = true

// loadWord reads the word at addr through an interlocked add of zero.
// The read-modify-write carries a full fence on every architecture and
// writes back exactly what it read, so concurrent adds are never lost.
//
//go:nosplit
func loadWord(addr *uint32) uint32 {
	return atomic.AddUint32(addr, 0)
}
