//go:build atomcell_opt_cachelinesize_32

package atomcell

// CacheLineSize is fixed at 32 bytes by the build tag.
const CacheLineSize uintptr = 32
