package config

// DefaultConfigTOML is the commented template written by `simdup init`.
const DefaultConfigTOML = `# simdup configuration file
# Run "simdup cluster --config .simdup.toml ..." or place this file in the
# working directory or any directory above it for automatic discovery.

# Number of bit blocks to partition the 64-bit fingerprint into.
# At most 64 and greater than distance; it need not divide 64 evenly.
blocks = 16

# Maximum Hamming distance between two fingerprints to count as a match.
distance = 3

# Input format: "hash" (tab-separated id/hash pairs) or "json" (one record per line).
format = "hash"

# Column holding the text to fingerprint, when format = "json".
text_column = "text"

# Column holding the record identifier.
id_column = "id"

# Width, in runes, of the sliding window used to tokenize text before hashing.
window = 5

# Number of records to sample from the input; 0 means read everything.
sample = 0

# Worker goroutines for the permutation search; 0 means one per CPU.
workers = 0
`
