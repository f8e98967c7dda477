package model

// Importance ranks how central a claim is to the article's headline and lede
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// EntityType classifies a named entity mentioned by a claim
type EntityType string

const (
	EntityPerson  EntityType = "PERSON"
	EntityOrg     EntityType = "ORG"
	EntityGPE     EntityType = "GPE" // geopolitical entity (city, state, country)
	EntityEvent   EntityType = "EVENT"
	EntityProduct EntityType = "PRODUCT"
	EntityOther   EntityType = "OTHER"
)

// Entity is a named entity owned by exactly one claim
type Entity struct {
	Name string     `json:"name" validate:"required"`
	Type EntityType `json:"type" validate:"required,oneof=PERSON ORG GPE EVENT PRODUCT OTHER"`
}

// Claim is an atomic, independently verifiable factual proposition
// extracted from article text. IDs are assigned by the extraction stage,
// unique within one response, and consumed downstream by string join
// (claim_id), never mutated after extraction.
type Claim struct {
	ID             string     `json:"id" validate:"required"`
	Text           string     `json:"text" validate:"required"`
	Importance     Importance `json:"importance" validate:"required,oneof=high medium low"`
	Subject        string     `json:"subject" validate:"required"`
	Predicate      string     `json:"predicate" validate:"required"`
	Object         string     `json:"object"`   // may be empty for intransitive predicates
	Time           string     `json:"time"`     // YYYY-MM-DD when explicit in the source
	Location       string     `json:"location"` // city/state/country when present
	Entities       []Entity   `json:"entities" validate:"required,dive"`
	RetrievalQuery string     `json:"retrieval_query" validate:"required"`
	SourceSentence string     `json:"source_sentence" validate:"required"`
}

// ClaimList is the extraction stage output: at least one claim, ids unique
// within the list. The 5-20 cardinality rule is instruction-level policy
// and is deliberately not enforced here.
type ClaimList struct {
	ArticleTitle *string `json:"article_title"`
	Claims       []Claim `json:"claims" validate:"required,min=1,unique=ID,dive"`
}
