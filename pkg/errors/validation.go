package errors

import "strings"

// MaxEnumerationSize is the largest size the HTTP API can be configured to
// accept. The CLI and the core packages take any int.
const MaxEnumerationSize = 64

// ValidateTreeSize checks a node count for tree enumeration.
func ValidateTreeSize(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidSize, "tree needs at least one node, got %d", n)
	}
	return nil
}

// ValidatePartitionArgs checks the (n, L) pair for partition enumeration.
// Pairs with n < L are valid and simply have no partitions.
func ValidatePartitionArgs(n, l int) error {
	if n < 0 || l < 0 {
		return New(ErrCodeInvalidArguments, "partition arguments must be non-negative, got n=%d L=%d", n, l)
	}
	return nil
}

// ValidateBound rejects size parameters above max.
func ValidateBound(name string, v, max int) error {
	if v > max {
		return New(ErrCodeInvalidInput, "%s too large (max %d), got %d", name, max, v)
	}
	return nil
}

// ValidateLimit checks an item limit. Zero means unlimited.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return New(ErrCodeInvalidInput, "limit cannot be negative, got %d", limit)
	}
	return nil
}

// ValidateChoice checks that v is one of allowed, case-insensitively.
func ValidateChoice(code Code, what, v string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return nil
		}
	}
	return New(code, "invalid %s %q (must be one of: %s)", what, v, strings.Join(allowed, ", "))
}
