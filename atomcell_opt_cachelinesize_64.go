//go:build atomcell_opt_cachelinesize_64

package atomcell

// CacheLineSize is fixed at 64 bytes by the build tag.
const CacheLineSize uintptr = 64
