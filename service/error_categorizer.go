package service

import (
	"strings"

	"github.com/ludo-technologies/simdup/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns map[domain.ErrorCategory][]string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns initializes error pattern mappings
func initializeErrorPatterns() map[domain.ErrorCategory][]string {
	return map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"invalid input",
			"no such file",
			"path",
			"file not found",
			"cannot access",
			"permission denied",
			"stdin",
		},
		domain.ErrorCategoryConfig: {
			"config",
			"configuration",
			"invalid settings",
			"missing configuration",
			"toml",
		},
		domain.ErrorCategoryTimeout: {
			"timeout",
			"deadline",
			"context canceled",
			"context deadline exceeded",
			"operation timed out",
		},
		domain.ErrorCategoryOutput: {
			"write",
			"output",
			"cannot create",
			"failed to generate",
		},
		domain.ErrorCategoryProcessing: {
			"parse",
			"blocks",
			"distance",
			"fingerprint",
			"permutation",
			"tokeniz",
			"json",
		},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	// Check each category's patterns
	for category, patterns := range ec.patterns {
		if containsAnyPattern(errMsg, patterns) {
			message := ec.getCategoryMessage(category)
			return &domain.CategorizedError{
				Category: category,
				Message:  message,
				Original: err,
			}
		}
	}

	// Default to unknown category
	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the --input path exists and is readable",
			"Use - to read from stdin",
			"Verify the file matches the --format you passed (hash or json)",
		},
		domain.ErrorCategoryConfig: {
			"Verify the .simdup.toml syntax",
			"Try: simdup init to generate a starting config file",
			"Check that --blocks and --distance satisfy blocks > distance",
		},
		domain.ErrorCategoryTimeout: {
			"Increase --workers or split the input into smaller shards",
			"Check whether the run was cancelled (context deadline or signal)",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions on the --output path",
			"Ensure the output directory exists",
		},
		domain.ErrorCategoryProcessing: {
			"Confirm every hash column value is a valid unsigned 64-bit decimal",
			"Confirm --text-column/--id-column match the JSON record keys",
			"Confirm 0 < distance < blocks <= 64",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --progress to see where processing stalled",
			"Report the issue with the failing input sample",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input records",
		domain.ErrorCategoryConfig:     "Configuration file or flag error",
		domain.ErrorCategoryTimeout:    "Clustering run timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to write cluster report",
		domain.ErrorCategoryProcessing: "Error while fingerprinting or searching for matches",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
