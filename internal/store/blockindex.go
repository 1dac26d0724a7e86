package store

import "fmt"

// BlockIndex translates a block ordinal into the (offset, length)
// stream slice holding that block's bytes, for one of the two parallel
// streams (vertex/arc blocks, or shape blocks). It is a prefix-sum
// array: locIndex[i] is the cumulative byte length of blocks 0..i.
type BlockIndex struct {
	locIndex []uint64
	base     int64
}

// NewBlockIndex builds an index from a prefix-sum array of cumulative
// block lengths and the stream offset the first block starts at.
func NewBlockIndex(locIndex []uint64, base int64) *BlockIndex {
	return &BlockIndex{locIndex: locIndex, base: base}
}

// Len returns the number of block ordinals this index covers.
func (idx *BlockIndex) Len() int { return len(idx.locIndex) }

// Resolve returns the stream slice for block ordinal ord.
//
// Resolve panics if ord is out of range: the caller is expected to
// have derived ord from BlockID(v) for a vertex v known to exist
// (spec §A.4.2, "undefined for blockOrdinal >= locIndex.length";
// callers must be prevented from reaching here by construction).
func (idx *BlockIndex) Resolve(ord uint32) (offset int64, length int) {
	if int(ord) >= len(idx.locIndex) {
		panic(fmt.Sprintf("store: block ordinal %d out of range (have %d blocks)", ord, len(idx.locIndex)))
	}
	if ord == 0 {
		return idx.base, int(idx.locIndex[0])
	}
	start := idx.locIndex[ord-1]
	end := idx.locIndex[ord]
	return idx.base + int64(start), int(end - start)
}

// InRange reports whether ord names a block this index knows about,
// without panicking. Callers that cannot otherwise guarantee the
// vertex exists (e.g. an arbitrary caller-supplied id) should check
// this before calling Resolve.
func (idx *BlockIndex) InRange(ord uint32) bool {
	return int(ord) < len(idx.locIndex)
}
