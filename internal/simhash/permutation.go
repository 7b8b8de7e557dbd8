package simhash

import "math/bits"

// Permutation is a bijection on 64-bit words obtained by reordering whole
// blocks, built from an ordered list of block masks: the first block moves
// to the highest bits of the permuted word and each later block sits
// directly below the one before it. It carries the forward shift offsets,
// the reverse masks, and the search mask covering the leading blocks.
type Permutation struct {
	masks        []uint64
	offsets      []int
	reverseMasks []uint64
	searchMask   uint64
}

// NewPermutation builds a Permutation from blocks in the order they will
// appear, from the most significant end of the permuted word downwards:
// blocks[0] occupies the top bits. leadBlocks is the number of
// leading blocks (out of len(blocks)) that make up the search prefix.
func NewPermutation(blocks []uint64, leadBlocks int) *Permutation {
	n := len(blocks)
	offsets := make([]int, n)
	reverseMasks := make([]uint64, n)

	var width int
	var leadWidth int
	for i, mask := range blocks {
		lo, hi := blockBitRange(mask)
		w := hi - lo
		width += w
		offset := Bits - width - lo
		reverseMasks[i] = shift(mask, offset)
		offsets[i] = offset
		if i < leadBlocks {
			leadWidth += w
		}
	}

	var searchMask uint64
	if leadWidth > 0 {
		searchMask = ^uint64(0) << uint(Bits-leadWidth)
	}

	return &Permutation{
		masks:        blocks,
		offsets:      offsets,
		reverseMasks: reverseMasks,
		searchMask:   searchMask,
	}
}

// blockBitRange returns the rightmost set bit position lo and one past the
// leftmost set bit position hi, so hi-lo is the block's width.
func blockBitRange(mask uint64) (lo, hi int) {
	return bits.TrailingZeros64(mask), bits.Len64(mask)
}

func shift(x uint64, offset int) uint64 {
	if offset >= 0 {
		return x << uint(offset)
	}
	return x >> uint(-offset)
}

// Apply permutes h according to this Permutation's block order.
func (p *Permutation) Apply(h uint64) uint64 {
	var out uint64
	for i, mask := range p.masks {
		out |= shift(h&mask, p.offsets[i])
	}
	return out
}

// Reverse undoes Apply: Reverse(Apply(h)) == h for all h.
func (p *Permutation) Reverse(h uint64) uint64 {
	var out uint64
	for i, rmask := range p.reverseMasks {
		out |= shift(h&rmask, -p.offsets[i])
	}
	return out
}

// SearchMask returns the prefix mask whose set high bits cover the leading
// blocks of this permutation.
func (p *Permutation) SearchMask() uint64 {
	return p.searchMask
}
