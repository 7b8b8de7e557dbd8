package service

import (
	"github.com/ludo-technologies/simdup/internal/simhash"
)

// FingerprintBuilder turns raw text into a 64-bit SimHash fingerprint by
// sliding a fixed-width window of runes across it, hashing each window,
// and folding the resulting feature hashes.
//
// The reference implementation's sliding window stops one iteration short
// (it loops while i < len(text)-window, discarding the final window);
// Build fixes that off by using i <= len(runes)-window.
type FingerprintBuilder struct {
	hasher *TokenHasher
	window int
}

// NewFingerprintBuilder creates a FingerprintBuilder with the given
// sliding window width, in runes.
func NewFingerprintBuilder(window int) *FingerprintBuilder {
	return &FingerprintBuilder{hasher: NewTokenHasher(), window: window}
}

// Build computes the fingerprint for text. Text shorter than the window
// yields a single feature hashed from the whole string.
func (b *FingerprintBuilder) Build(text string) uint64 {
	runes := []rune(text)
	if len(runes) <= b.window {
		return simhash.Fold([]uint64{b.hasher.HashToken(text)})
	}

	features := make([]uint64, 0, len(runes)-b.window+1)
	for i := 0; i <= len(runes)-b.window; i++ {
		window := string(runes[i : i+b.window])
		features = append(features, b.hasher.HashToken(window))
	}
	return simhash.Fold(features)
}
