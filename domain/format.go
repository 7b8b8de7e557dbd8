package domain

import "fmt"

// InputFormat selects how records are decoded from the input stream.
type InputFormat string

const (
	// InputFormatHash reads pre-computed fingerprints: TSV with header "id\thash".
	InputFormatHash InputFormat = "hash"
	// InputFormatJSON reads raw records, one JSON object per line, and derives
	// fingerprints from a text column via service.FingerprintBuilder.
	InputFormatJSON InputFormat = "json"
)

// ParseInputFormat validates a --format flag value.
func ParseInputFormat(s string) (InputFormat, error) {
	switch InputFormat(s) {
	case InputFormatHash, InputFormatJSON:
		return InputFormat(s), nil
	default:
		return "", NewInvalidInputError(fmt.Sprintf("unsupported format %q, expected \"hash\" or \"json\"", s), nil)
	}
}

// OutputFormat identifies the shape of a written report. The reference
// binary only ever emits tab-separated cluster assignments.
type OutputFormat string

const (
	OutputFormatTSV OutputFormat = "tsv"
)
