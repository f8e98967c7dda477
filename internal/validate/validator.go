// Package validate performs structural checks on raw input text before it
// is sent anywhere. Pure functions: no side effects, no network access.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Result reports the outcome of input validation
type Result struct {
	Valid  bool
	Reason string
}

// Text checks raw article text against the caller-supplied length ceiling.
// Length is counted in characters, not bytes.
func Text(input string, maxLength int) Result {
	if strings.TrimSpace(input) == "" {
		return Result{Reason: "text input is required"}
	}

	if !utf8.ValidString(input) {
		return Result{Reason: "input must be valid text"}
	}

	if n := utf8.RuneCountInString(input); n > maxLength {
		return Result{Reason: fmt.Sprintf("input exceeds maximum length of %d characters", maxLength)}
	}

	return Result{Valid: true}
}
