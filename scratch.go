package ssz

import (
	"unsafe"

	"github.com/gfx-labs/sszstream/merkle_tree/bufpool"
)

// chunkRangeSize is the in-memory footprint of one ChunkRange, used to
// size the pooled scratch buffer a range table borrows.
const chunkRangeSize = int(unsafe.Sizeof(ChunkRange{}))

// newRangeScratch borrows a pooled byte buffer and hands back count
// ChunkRange slots backed by it, the same "reinterpret a pooled []byte"
// trade the teacher's own ComputeMerkleRootRange makes with its layer
// buffer (merkle_tree/merkle_root.go): relying on the runtime not to
// move or resize the backing array out from under the cast is technically
// unsafe, but the worst case is a missed pool hit, never corruption. The
// returned release func must be called exactly once, after the ranges
// are no longer needed, to return the buffer to the pool.
func newRangeScratch(count int) (release func(), ranges []ChunkRange) {
	if count == 0 {
		return func() {}, nil
	}
	buf := bufpool.Get(count * chunkRangeSize)
	ranges = unsafe.Slice((*ChunkRange)(unsafe.Pointer(&buf.B[0])), count)
	return func() { bufpool.Put(buf) }, ranges
}
