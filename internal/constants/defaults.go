// Package constants collects the engine's tunable default values in one
// place, the way a library separates policy from mechanism.
package constants

const (
	// DefaultWindow is the sliding-window size, in code points, used to
	// tokenize a text column into shingles when fingerprints are derived
	// from raw records rather than read as precomputed hashes.
	DefaultWindow = 5

	// DefaultBlocks is the number of blocks the fingerprint is partitioned
	// into for the permutation-based near-duplicate search.
	DefaultBlocks = 16

	// DefaultTextColumn and DefaultIDColumn name the JSON fields used when
	// --text-column/--id-column are not overridden.
	DefaultTextColumn = "text"
	DefaultIDColumn   = "id"

	// DefaultWorkers is used when --workers is zero or unset: one worker
	// per available CPU, left to the caller to resolve via runtime.NumCPU.
	DefaultWorkers = 0

	// FingerprintBits is the fixed width of a SimHash fingerprint.
	FingerprintBits = 64
)
