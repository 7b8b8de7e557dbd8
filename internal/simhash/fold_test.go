package simhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_EmptyYieldsZero(t *testing.T) {
	assert.Equal(t, uint64(0), Fold(nil))
	assert.Equal(t, uint64(0), Fold([]uint64{}))
}

func TestFold_MajorityRule(t *testing.T) {
	// bit 0 set in 2/3, bit 1 set in 1/3 -> only bit 0 survives.
	assert.Equal(t, uint64(0x1), Fold([]uint64{0x1, 0x1, 0x2}))
}

func TestFold_TieResolvesToZero(t *testing.T) {
	assert.Equal(t, uint64(0x0), Fold([]uint64{0x1, 0x2}))
}

func TestFold_Unanimous(t *testing.T) {
	assert.Equal(t, uint64(0xFF), Fold([]uint64{0xFF, 0xFF, 0xFF}))
}

func TestFold_BitRule(t *testing.T) {
	features := []uint64{0x1, 0x3, 0x3, 0x5}
	got := Fold(features)
	for i := 0; i < Bits; i++ {
		votes := 0
		for _, h := range features {
			if h&(uint64(1)<<uint(i)) != 0 {
				votes++
			}
		}
		want := votes*2 > len(features)
		assert.Equal(t, want, got&(uint64(1)<<uint(i)) != 0, "bit %d", i)
	}
}
