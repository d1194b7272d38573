package ssz

// buildVariableRanges validates and partitions the tail of input into
// count element ranges, given that input opens with count little-endian
// u32 offsets (the "offset table" shape shared by a List or Vector of
// variable-size elements, and by the variable-field tail of a mixed
// Container per §4.1). The caller has already derived count and any
// limit check; this only validates the table itself: the first offset
// must land exactly after the table, offsets must be non-decreasing, and
// the last offset must not run past the end of input.
//
// Offsets are read directly off input one at a time (only the previous
// value is kept) rather than copied into a scratch slice first, so the
// only allocation this makes is the returned ranges themselves - taken
// from the pooled range buffer below.
func buildVariableRanges(input []byte, count int) ([]ChunkRange, func(), error) {
	if count == 0 {
		return nil, func() {}, nil
	}
	headerSize := count * 4
	if len(input) < headerSize {
		return nil, func() {}, NewError(CodeUnexpectedEOF, "offset table needs %d bytes, have %d", headerSize, len(input))
	}

	firstOffset := uint64(Uint32FromBytes(input))
	if firstOffset != uint64(headerSize) {
		return nil, func() {}, NewError(CodeBadOffset, "first offset %d does not match header size %d", firstOffset, headerSize)
	}

	release, ranges := newRangeScratch(count)
	prevOffset := firstOffset
	ranges[0].Start = int(firstOffset)
	for i := 1; i < count; i++ {
		off := uint64(Uint32FromBytes(input[i*4:]))
		if off < prevOffset {
			release()
			return nil, func() {}, NewError(CodeBadOffset, "offset %d (%d) is less than offset %d (%d)", i, off, i-1, prevOffset)
		}
		ranges[i-1].End = int(off)
		ranges[i].Start = int(off)
		prevOffset = off
	}
	ranges[count-1].End = len(input)
	if prevOffset > uint64(len(input)) {
		release()
		return nil, func() {}, NewError(CodeBadOffset, "last offset %d exceeds input length %d", prevOffset, len(input))
	}
	return ranges, release, nil
}
