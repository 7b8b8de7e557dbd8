package service

import "hash/fnv"

// TokenHasher turns a token (a window of runes from the input text) into
// the per-feature 64-bit hash that simhash.Fold consumes.
type TokenHasher struct{}

// NewTokenHasher creates a TokenHasher.
func NewTokenHasher() *TokenHasher {
	return &TokenHasher{}
}

// HashToken hashes token with FNV-1a-64.
func (h *TokenHasher) HashToken(token string) uint64 {
	f := fnv.New64a()
	_, _ = f.Write([]byte(token))
	return f.Sum64()
}
