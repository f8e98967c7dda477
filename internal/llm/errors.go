package llm

import "fmt"

// UpstreamError reports a provider-side failure: a non-completed response,
// a transport error, or a timeout. Never retried; fails the whole request.
type UpstreamError struct {
	Status  int // HTTP status reported by the provider, 0 when unknown
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("upstream timeout: %v", e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("upstream error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("upstream error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// SchemaMismatchError reports provider output that failed structural
// validation against the declared schema. Surfaced to callers like an
// upstream failure but kept distinct for diagnosis.
type SchemaMismatchError struct {
	Schema string // declared schema name
	Err    error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("output does not match schema %q: %v", e.Schema, e.Err)
}

func (e *SchemaMismatchError) Unwrap() error { return e.Err }
