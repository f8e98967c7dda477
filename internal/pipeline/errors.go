package pipeline

import (
	"fmt"
	"strings"
)

// ValidationError rejects input before any provider call
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AdmissionRejectedError rejects a request over quota
type AdmissionRejectedError struct {
	Key string
}

func (e *AdmissionRejectedError) Error() string {
	return fmt.Sprintf("admission rejected for %q", e.Key)
}

// ModerationRejectedError rejects flagged input, carrying the triggered
// category names
type ModerationRejectedError struct {
	Categories []string
}

func (e *ModerationRejectedError) Error() string {
	return "content flagged: " + strings.Join(e.Categories, ", ")
}

// ConfigurationError signals the service cannot reach its provider at all,
// for example a missing API key
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }
