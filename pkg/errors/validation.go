package errors

import (
	"strings"
	"unicode"
)

// Limits applied to externally supplied graphs.
const (
	MaxNodeNameLength = 256
	MaxNodes          = 5000
)

// ValidateNodeName validates a node or partition name for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidGraph, "node name cannot be empty")
	}

	if len(name) > MaxNodeNameLength {
		return New(ErrCodeInvalidGraph, "node name too long (max %d characters)", MaxNodeNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateNodeCount rejects graphs too large for an exhaustive pass.
// Each exchange step evaluates every remaining cross pair, so a pass is
// cubic in the partition size.
func ValidateNodeCount(n int) error {
	if n > MaxNodes {
		return New(ErrCodeInvalidGraph, "graph has %d nodes (max %d)", n, MaxNodes)
	}
	return nil
}

// ValidateMaxPasses validates a pass limit. Zero selects the default and
// negative values are rejected at the boundary.
func ValidateMaxPasses(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "max passes must not be negative (got %d)", n)
	}
	return nil
}

// ValidatePath validates an output path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
