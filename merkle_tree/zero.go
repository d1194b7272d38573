package merkle_tree

import "sync"

// zeroHashes[h] is the root of a fully zero-filled subtree of height h:
// zeroHashes[0] is the all-zero leaf, zeroHashes[h+1] is
// NodeHash(zeroHashes[h], zeroHashes[h]). Stack.Finalize uses these to
// virtually extend a partial tree out to its declared depth without
// touching the leaves a caller never pushed.
var (
	zeroHashesOnce sync.Once
	zeroHashes     [65][32]byte
)

// ZeroHash returns the root of a zero-filled subtree of the given
// height, computing the table lazily on first use.
func ZeroHash(height uint8) [32]byte {
	zeroHashesOnce.Do(initZeroHashes)
	return zeroHashes[height]
}

func initZeroHashes() {
	for h := uint8(1); h < uint8(len(zeroHashes)); h++ {
		zeroHashes[h] = NodeHash(zeroHashes[h-1], zeroHashes[h-1])
	}
}
