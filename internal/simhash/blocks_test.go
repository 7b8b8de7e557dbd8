package simhash

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockMasks_Coverage(t *testing.T) {
	for _, b := range []int{1, 2, 3, 4, 7, 16, 63, 64} {
		t.Run("", func(t *testing.T) {
			masks, err := BlockMasks(b)
			require.NoError(t, err)
			require.Len(t, masks, b)

			var union uint64
			var overlap uint64
			for _, m := range masks {
				overlap |= union & m
				union |= m
			}
			assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), union, "blocks must cover all 64 bits for b=%d", b)
			assert.Equal(t, uint64(0), overlap, "blocks must be disjoint for b=%d", b)
		})
	}
}

func TestBlockMasks_WidthsBalanced(t *testing.T) {
	masks, err := BlockMasks(7)
	require.NoError(t, err)

	minW, maxW := 64, 0
	for _, m := range masks {
		w := bits.OnesCount64(m)
		if w < minW {
			minW = w
		}
		if w > maxW {
			maxW = w
		}
	}
	assert.LessOrEqual(t, maxW-minW, 1)
}

func TestBlockMasks_InvalidCount(t *testing.T) {
	_, err := BlockMasks(0)
	assert.Error(t, err)

	_, err = BlockMasks(65)
	assert.Error(t, err)
}
