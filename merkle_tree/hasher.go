package merkle_tree

import (
	"crypto/sha256"

	"github.com/prysmaticlabs/gohashtree"
)

// Sha256 is the leaf_hash primitive of spec §2.1: a one-shot digest over
// arbitrary-length input, as opposed to NodeHash's fixed 64-byte
// pairwise combine. The engine itself only ever calls NodeHash; Sha256
// is what a host uses to hash something that isn't already a pair of
// 32-byte children, e.g. the padded bytes of an entire serialized block.
func Sha256(data []byte, extras ...[]byte) (b [32]byte) {
	h := sha256.New()
	h.Reset()

	h.Write(data)
	for _, extra := range extras {
		h.Write(extra)
	}
	h.Sum(b[:0])
	return b
}

// NodeHash combines two child digests into their parent, the single
// primitive every Merkle step in this package is built from. It is
// sha256(left || right), computed through gohashtree (the hasher the
// rest of the ecosystem uses for consensus-layer SSZ roots), one pair
// per call.
func NodeHash(left, right [32]byte) [32]byte {
	in := [2][32]byte{left, right}
	out := make([][32]byte, 1)
	if err := gohashtree.Hash(out, in[:]); err != nil {
		// gohashtree only errors on malformed input shapes, never on
		// the fixed 2-in/1-out call this package makes.
		panic(err)
	}
	return out[0]
}

