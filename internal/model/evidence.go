package model

// SourceType classifies the authority of an evidence source
type SourceType string

const (
	SourcePrimary   SourceType = "primary"
	SourceSecondary SourceType = "secondary"
	SourceUnknown   SourceType = "unknown"
)

// EvidenceDoc is one dated, sourced passage gathered during the evidence
// phase. The id is a stable token assigned by the model and used later as
// a citation target.
type EvidenceDoc struct {
	ID          string     `json:"id" validate:"required"`
	URL         string     `json:"url" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	PublishedAt string     `json:"published_at" validate:"required"` // ISO-8601
	Passage     string     `json:"passage" validate:"required"`      // ~1-3 sentences
	SourceType  SourceType `json:"source_type" validate:"required,oneof=primary secondary unknown"`
}

// EvidenceBundle is the evidence stage output. An empty result set is a
// valid terminal state, not an error.
type EvidenceBundle struct {
	Results []EvidenceDoc `json:"results" validate:"dive"`
}

// SearchPolicy is passed alongside the claim list into the evidence phase
type SearchPolicy struct {
	TimeWindowDays int `json:"time_window_days"`
}
