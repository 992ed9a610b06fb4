//go:build !atomcell_opt_rmw_loads

package atomcell

import (
	"sync/atomic"
)

const rmwLoads = false

// loadWord reads the word at addr with a sequentially consistent load.
//
//go:nosplit
func loadWord(addr *uint32) uint32 {
	return atomic.LoadUint32(addr)
}
