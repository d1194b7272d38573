package merkle_tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func leaf(b byte) [32]byte {
	var h [32]byte
	h[0] = b
	return h
}

func TestStackEmptyFinalizesToZeroHash(t *testing.T) {
	var s Stack
	require.Equal(t, ZeroHash(3), s.Finalize(3))
}

func TestStackSingleLeafAtDepthZero(t *testing.T) {
	var s Stack
	s.Push(leaf(1))
	require.Equal(t, leaf(1), s.Finalize(0))
}

func TestStackSingleLeafExtendsWithZeroSubtrees(t *testing.T) {
	var s Stack
	s.Push(leaf(1))
	got := s.Finalize(2)
	want := NodeHash(NodeHash(leaf(1), ZeroHash(0)), ZeroHash(1))
	require.Equal(t, want, got)
}

func TestStackTwoLeavesMergeInOrder(t *testing.T) {
	var s Stack
	s.Push(leaf(1))
	s.Push(leaf(2))
	want := NodeHash(leaf(1), leaf(2))
	require.Equal(t, want, s.Finalize(1))
}

func TestStackFourLeavesFullBinaryTree(t *testing.T) {
	var s Stack
	for i := byte(1); i <= 4; i++ {
		s.Push(leaf(i))
	}
	left := NodeHash(leaf(1), leaf(2))
	right := NodeHash(leaf(3), leaf(4))
	want := NodeHash(left, right)
	require.Equal(t, want, s.Finalize(2))
}

func TestStackThreeLeavesPadsLastPair(t *testing.T) {
	var s Stack
	s.Push(leaf(1))
	s.Push(leaf(2))
	s.Push(leaf(3))
	left := NodeHash(leaf(1), leaf(2))
	right := NodeHash(leaf(3), ZeroHash(0))
	want := NodeHash(left, right)
	require.Equal(t, want, s.Finalize(2))
}

func TestStackMatchesPriorPushOrderIndependentOfBatching(t *testing.T) {
	leaves := make([][32]byte, 7)
	for i := range leaves {
		leaves[i] = leaf(byte(i + 1))
	}

	var whole Stack
	for _, l := range leaves {
		whole.Push(l)
	}
	rootWhole := whole.Finalize(3)

	var split Stack
	for _, l := range leaves[:3] {
		split.Push(l)
	}
	for _, l := range leaves[3:] {
		split.Push(l)
	}
	rootSplit := split.Finalize(3)

	require.Equal(t, rootWhole, rootSplit)
}

func TestLengthMixinBindsCountLittleEndian(t *testing.T) {
	root := leaf(9)
	got := LengthMixin(root, 0x0102)

	var lenChunk [32]byte
	lenChunk[0] = 0x02
	lenChunk[1] = 0x01
	want := NodeHash(root, lenChunk)

	require.Equal(t, want, got)
}

func TestLengthMixinZeroCountIsDistinctFromPlainRoot(t *testing.T) {
	root := leaf(5)
	require.NotEqual(t, root, LengthMixin(root, 0))
}

func TestStackPanicsOnHeightAboveDeclaredDepth(t *testing.T) {
	var s Stack
	for i := byte(1); i <= 4; i++ {
		s.Push(leaf(i))
	}
	require.Panics(t, func() {
		s.Finalize(1)
	})
}
