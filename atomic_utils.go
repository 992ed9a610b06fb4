package atomcell

import (
	"sync/atomic"
)

// noCopy may be embedded into structs which must not be copied after
// the first use. See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// storeWord replaces the word at addr. It is a full atomic store, so it
// may race freely with loadWord and addWord on the same address.
//
//go:nosplit
func storeWord(addr *uint32, val uint32) {
	atomic.StoreUint32(addr, val)
}

// addWord adds delta to the word at addr with a single interlocked
// instruction. Narrow values ride in the low bits of the word, so the
// carry out of them is discarded on the next read.
//
//go:nosplit
func addWord(addr *uint32, delta uint32) {
	atomic.AddUint32(addr, delta)
}
