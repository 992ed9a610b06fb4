//go:build atomcell_opt_cachelinesize_128

package atomcell

// CacheLineSize is fixed at 128 bytes by the build tag.
const CacheLineSize uintptr = 128
