package ssz

// ChunkRange is a half-open byte interval [Start, End) into the input
// slice a layout parse produced. 0 <= Start <= End <= len(input).
type ChunkRange struct {
	Start int
	End   int
}

func (r ChunkRange) slice(input []byte) []byte {
	return input[r.Start:r.End]
}
