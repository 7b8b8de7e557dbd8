package bitutil

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopcount(t *testing.T) {
	cases := []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0xAAAAAAAAAAAAAAAA, 0x1, 0x8000000000000000}
	for _, c := range cases {
		assert.Equal(t, bits.OnesCount64(c), Popcount(c))
	}
}

func TestPopcountXor(t *testing.T) {
	assert.Equal(t, 0, PopcountXor(0x1234, 0x1234))
	assert.Equal(t, 64, PopcountXor(0, 0xFFFFFFFFFFFFFFFF))
	assert.Equal(t, 1, PopcountXor(0x0, 0x1))
	assert.Equal(t, 3, PopcountXor(0x0, 0x7))
}
