//go:build atomcell_opt_cachelinesize_256

package atomcell

// CacheLineSize is fixed at 256 bytes by the build tag.
const CacheLineSize uintptr = 256
