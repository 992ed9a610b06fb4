//go:build !atomcell_opt_cachelinesize_32 && !atomcell_opt_cachelinesize_64 && !atomcell_opt_cachelinesize_128 && !atomcell_opt_cachelinesize_256

package atomcell

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the width PaddedCell rounds up to. By default it is
// the line size golang.org/x/sys/cpu reports for the target GOARCH; the
// atomcell_opt_cachelinesize_* tags pin it to a fixed value instead.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
