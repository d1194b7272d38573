package ssz

import "github.com/gfx-labs/sszstream/merkle_tree"

// declaredLeafCount returns the capacity-based leaf count a descriptor
// commits a tree to, independent of any actual value's element count:
// Vector/Container leaf counts come straight from the descriptor's exact
// shape, while List/Bitlist use their declared limit. Only Basic
// elements pack several into one chunk (§4.3); a composite element,
// fixed-size or not, always gets one leaf of its own.
func declaredLeafCount(d *TypeDescriptor) uint64 {
	switch d.Type {
	case KindVector:
		if size, ok := d.Element.BasicSize(); ok {
			return merkle_tree.CeilDiv(d.Length, uint64(32/size))
		}
		return d.Length
	case KindList:
		if size, ok := d.Element.BasicSize(); ok {
			return merkle_tree.CeilDiv(d.Limit, uint64(32/size))
		}
		return d.Limit
	case KindContainer:
		return uint64(len(d.Fields))
	case KindBitlist:
		return merkle_tree.CeilDiv(d.Limit, 256)
	case KindBitvector:
		return merkle_tree.CeilDiv(d.Length, 256)
	default: // Basic
		return 1
	}
}

// declaredDepth is the number of merge levels Stack.Finalize must fold a
// descriptor's value up to, computed from its capacity rather than any
// particular value.
func declaredDepth(d *TypeDescriptor) uint8 {
	return merkle_tree.CeilLog2(declaredLeafCount(d))
}
