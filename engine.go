package ssz

import (
	"math/bits"

	"github.com/gfx-labs/sszstream/merkle_tree"
)

// maxRecursionDepth bounds how deeply a descriptor may nest before the
// engine refuses to keep recursing. It is the resource-exhaustion guard
// called for by §5/§7.2: a hostile or machine-generated descriptor tree
// cannot amplify this engine's own call stack past a fixed budget, the
// same discipline Stack applies to the tree height itself.
const maxRecursionDepth = 64

// RootOf is the streaming engine's primary entry point: it classifies
// input per descriptor, merkleizes it chunk by chunk without ever
// materializing a decoded value, and returns the 32-byte hash tree root.
// Any mismatch between input and descriptor aborts with a tagged *Error
// and never a partial digest.
func RootOf(descriptor *TypeDescriptor, input []byte) (Digest, error) {
	if descriptor == nil {
		return Digest{}, NewError(CodeUnsupportedType, "nil type descriptor")
	}
	if err := descriptor.Validate(); err != nil {
		return Digest{}, NewError(CodeUnsupportedType, "%s", err)
	}
	return rootOf(descriptor, input, 0)
}

// RootFromChunks is the lower-level entry point for a host that has
// already chunked its data (or assembled composite leaves itself): it
// pushes every chunk onto a fresh Stack, finalizes at declaredDepth, and
// optionally mixes in an element/bit count.
func RootFromChunks(chunks ChunkSource, declaredDepth uint8, lengthMixin *uint64) Digest {
	var stack merkle_tree.Stack
	for {
		chunk, ok := chunks.Next()
		if !ok {
			break
		}
		stack.Push([32]byte(chunk))
	}
	root := stack.Finalize(declaredDepth)
	if lengthMixin != nil {
		root = merkle_tree.LengthMixin(root, *lengthMixin)
	}
	return Digest(root)
}

func rootOf(d *TypeDescriptor, input []byte, depth int) (Digest, error) {
	if depth > maxRecursionDepth {
		return Digest{}, NewError(CodeDepth, "descriptor recursion exceeds %d levels", maxRecursionDepth)
	}
	switch d.Type {
	case KindContainer:
		return rootOfContainer(d, input, depth)
	case KindVector:
		return rootOfVector(d, input, depth)
	case KindList:
		return rootOfList(d, input, depth)
	case KindBitlist:
		return rootOfBitlist(d, input)
	case KindBitvector:
		return rootOfBitvector(d, input)
	default:
		return rootOfBasic(d, input)
	}
}

// rootOfBasic merkleizes a fixed-size scalar: one zero-padded chunk, no
// stack needed since a single leaf is already its own root.
func rootOfBasic(d *TypeDescriptor, input []byte) (Digest, error) {
	size, ok := d.BasicSize()
	if !ok {
		return Digest{}, NewError(CodeUnsupportedType, "not a basic type: %s", d.Type)
	}
	if len(input) != size {
		return Digest{}, NewError(CodeNonCanonical, "%s: want %d bytes, got %d", d.Type, size, len(input))
	}
	var chunk Digest
	copy(chunk[:], input)
	return chunk, nil
}

// rootOfBitvector merkleizes a fixed-length bit array: packed straight
// into chunks, padding bits above length required to be zero, no length
// mixin (Bitvector's count is part of the type, not the value).
func rootOfBitvector(d *TypeDescriptor, input []byte) (Digest, error) {
	want := int((d.Length + 7) / 8)
	if len(input) != want {
		return Digest{}, NewError(CodeNonCanonical, "bitvector: want %d bytes, got %d", want, len(input))
	}
	if extra := d.Length % 8; extra != 0 && len(input) > 0 {
		mask := byte(0xFF << extra)
		if input[len(input)-1]&mask != 0 {
			return Digest{}, NewError(CodeBitlistPadding, "bitvector: nonzero bits above declared length in last byte")
		}
	}
	var stack merkle_tree.Stack
	pushPacked(&stack, input)
	return Digest(stack.Finalize(declaredDepth(d))), nil
}

// rootOfBitlist merkleizes a Bitlist: the sentinel bit in the last byte
// marks the exact bit length and is logically cleared, in a local scratch
// byte, before the payload is streamed (the caller's input is never
// mutated). The bit count is mixed into the final root.
func rootOfBitlist(d *TypeDescriptor, input []byte) (Digest, error) {
	if len(input) < 1 {
		return Digest{}, NewError(CodeUnexpectedEOF, "bitlist: need at least the sentinel byte")
	}
	last := input[len(input)-1]
	if last == 0 {
		return Digest{}, NewError(CodeBitlistPadding, "bitlist: sentinel byte is zero")
	}
	msb := bits.Len8(last) - 1
	bitLen := uint64((len(input)-1)*8 + msb)
	if bitLen > d.Limit {
		return Digest{}, NewError(CodeLengthOverflow, "bitlist: %d bits exceeds limit %d", bitLen, d.Limit)
	}
	sentinel := byte(1) << uint(msb)
	if last&^(sentinel|(sentinel-1)) != 0 {
		return Digest{}, NewError(CodeBitlistPadding, "bitlist: nonzero bits above sentinel in last byte")
	}

	var stack merkle_tree.Stack
	payloadLen := len(input) - 1
	i := 0
	for ; i+32 <= payloadLen; i += 32 {
		var chunk [32]byte
		copy(chunk[:], input[i:i+32])
		stack.Push(chunk)
	}
	var tail [32]byte
	n := copy(tail[:], input[i:payloadLen])
	tail[n] = last &^ sentinel
	if n > 0 || msb > 0 {
		stack.Push(tail)
	}

	root := stack.Finalize(declaredDepth(d))
	return Digest(merkle_tree.LengthMixin(root, bitLen)), nil
}

// rootOfVector merkleizes a Vector{element,length}: Basic elements pack
// into chunks directly, other fixed-size elements partition the slice
// contiguously and recurse per element, and variable-size elements read
// a leading offset table exactly as List does.
func rootOfVector(d *TypeDescriptor, input []byte, depth int) (Digest, error) {
	var stack merkle_tree.Stack

	if elemSize, ok := d.Element.BasicSize(); ok {
		want := elemSize * int(d.Length)
		if len(input) != want {
			return Digest{}, NewError(CodeNonCanonical, "vector: want %d bytes, got %d", want, len(input))
		}
		pushPacked(&stack, input)
	} else if elemSize, ok := d.Element.FixedByteSize(); ok {
		want := elemSize * int(d.Length)
		if len(input) != want {
			return Digest{}, NewError(CodeNonCanonical, "vector: want %d bytes, got %d", want, len(input))
		}
		pos := 0
		for i := uint64(0); i < d.Length; i++ {
			root, err := rootOf(d.Element, input[pos:pos+elemSize], depth+1)
			if err != nil {
				return Digest{}, err
			}
			stack.Push([32]byte(root))
			pos += elemSize
		}
	} else {
		ranges, release, err := buildVariableRanges(input, int(d.Length))
		defer release()
		if err != nil {
			return Digest{}, err
		}
		for _, r := range ranges {
			root, err := rootOf(d.Element, input[r.Start:r.End], depth+1)
			if err != nil {
				return Digest{}, err
			}
			stack.Push([32]byte(root))
		}
	}

	return Digest(stack.Finalize(declaredDepth(d))), nil
}

// rootOfList merkleizes a List{element,limit}: the element count is
// recovered from the input itself (byte count / element size for Basic
// and other fixed-size elements, or the first offset for variable-size
// elements), checked against limit, and mixed into the final root.
func rootOfList(d *TypeDescriptor, input []byte, depth int) (Digest, error) {
	var stack merkle_tree.Stack
	var count uint64

	if elemSize, ok := d.Element.BasicSize(); ok {
		if len(input)%elemSize != 0 {
			return Digest{}, NewError(CodeNonCanonical, "list: %d bytes not a multiple of element size %d", len(input), elemSize)
		}
		count = uint64(len(input) / elemSize)
		if count > d.Limit {
			return Digest{}, NewError(CodeLengthOverflow, "list: %d elements exceeds limit %d", count, d.Limit)
		}
		pushPacked(&stack, input)
	} else if elemSize, ok := d.Element.FixedByteSize(); ok {
		if len(input)%elemSize != 0 {
			return Digest{}, NewError(CodeNonCanonical, "list: %d bytes not a multiple of element size %d", len(input), elemSize)
		}
		count = uint64(len(input) / elemSize)
		if count > d.Limit {
			return Digest{}, NewError(CodeLengthOverflow, "list: %d elements exceeds limit %d", count, d.Limit)
		}
		pos := 0
		for i := uint64(0); i < count; i++ {
			root, err := rootOf(d.Element, input[pos:pos+elemSize], depth+1)
			if err != nil {
				return Digest{}, err
			}
			stack.Push([32]byte(root))
			pos += elemSize
		}
	} else if len(input) > 0 {
		if len(input) < 4 {
			return Digest{}, NewError(CodeUnexpectedEOF, "list: offset table truncated")
		}
		firstOffset := uint64(Uint32FromBytes(input))
		if firstOffset%4 != 0 {
			return Digest{}, NewError(CodeBadOffset, "first offset %d is not a multiple of 4", firstOffset)
		}
		if firstOffset > uint64(len(input)) {
			return Digest{}, NewError(CodeBadOffset, "first offset %d exceeds input length %d", firstOffset, len(input))
		}
		count = firstOffset / 4
		if count > d.Limit {
			return Digest{}, NewError(CodeLengthOverflow, "list: %d elements exceeds limit %d", count, d.Limit)
		}
		ranges, release, err := buildVariableRanges(input, int(count))
		defer release()
		if err != nil {
			return Digest{}, err
		}
		for _, r := range ranges {
			root, err := rootOf(d.Element, input[r.Start:r.End], depth+1)
			if err != nil {
				return Digest{}, err
			}
			stack.Push([32]byte(root))
		}
	}

	root := stack.Finalize(declaredDepth(d))
	return Digest(merkle_tree.LengthMixin(root, count)), nil
}

// rootOfContainer merkleizes a Container{fields}: when every field is
// fixed-size the slice partitions contiguously; otherwise each variable
// field contributes a 4-byte offset in the fixed prefix and its range is
// read off the resulting offset table, exactly as a List's is.
func rootOfContainer(d *TypeDescriptor, input []byte, depth int) (Digest, error) {
	fields := d.Fields
	n := len(fields)
	fixedSizes := make([]int, n)
	isFixed := make([]bool, n)
	allFixed := true
	for i := range fields {
		sz, ok := fields[i].FixedByteSize()
		fixedSizes[i] = sz
		isFixed[i] = ok
		if !ok {
			allFixed = false
		}
	}

	release, ranges := newRangeScratch(n)
	defer release()
	if allFixed {
		total := 0
		for _, sz := range fixedSizes {
			total += sz
		}
		if len(input) != total {
			return Digest{}, NewError(CodeMalformedHeader, "container: want %d bytes, got %d", total, len(input))
		}
		pos := 0
		for i, sz := range fixedSizes {
			ranges[i] = ChunkRange{Start: pos, End: pos + sz}
			pos += sz
		}
	} else {
		headerSize := 0
		for i := range fields {
			if isFixed[i] {
				headerSize += fixedSizes[i]
			} else {
				headerSize += 4
			}
		}
		if len(input) < headerSize {
			return Digest{}, NewError(CodeUnexpectedEOF, "container header needs %d bytes, have %d", headerSize, len(input))
		}

		pos := 0
		var varFields, varOffsets []int
		for i := range fields {
			if isFixed[i] {
				ranges[i] = ChunkRange{Start: pos, End: pos + fixedSizes[i]}
				pos += fixedSizes[i]
			} else {
				varFields = append(varFields, i)
				varOffsets = append(varOffsets, int(Uint32FromBytes(input[pos:])))
				pos += 4
			}
		}

		if varOffsets[0] != headerSize {
			return Digest{}, NewError(CodeBadOffset, "first variable-field offset %d does not match header size %d", varOffsets[0], headerSize)
		}
		for i := 1; i < len(varOffsets); i++ {
			if varOffsets[i] < varOffsets[i-1] {
				return Digest{}, NewError(CodeBadOffset, "container field %d offset %d is less than field %d offset %d", varFields[i], varOffsets[i], varFields[i-1], varOffsets[i-1])
			}
		}
		if varOffsets[len(varOffsets)-1] > len(input) {
			return Digest{}, NewError(CodeBadOffset, "last offset %d exceeds input length %d", varOffsets[len(varOffsets)-1], len(input))
		}
		for k, i := range varFields {
			end := len(input)
			if k+1 < len(varFields) {
				end = varOffsets[k+1]
			}
			ranges[i] = ChunkRange{Start: varOffsets[k], End: end}
		}
	}

	var stack merkle_tree.Stack
	for i := range fields {
		root, err := rootOf(&fields[i], input[ranges[i].Start:ranges[i].End], depth+1)
		if err != nil {
			return Digest{}, err
		}
		stack.Push([32]byte(root))
	}
	return Digest(stack.Finalize(declaredDepth(d))), nil
}

// pushPacked streams payload as consecutive 32-byte windows, zero-padding
// the final (possibly short) window, pushing each straight into stack
// without ever materializing the full chunk sequence.
func pushPacked(stack *merkle_tree.Stack, payload []byte) {
	i := 0
	for ; i+32 <= len(payload); i += 32 {
		var chunk [32]byte
		copy(chunk[:], payload[i:i+32])
		stack.Push(chunk)
	}
	if i < len(payload) {
		var chunk [32]byte
		copy(chunk[:], payload[i:])
		stack.Push(chunk)
	}
}
