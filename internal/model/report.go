package model

// Label is the per-claim assessment outcome
type Label string

const (
	LabelSupported            Label = "SUPPORTED"
	LabelContradicted         Label = "CONTRADICTED"
	LabelInsufficientEvidence Label = "INSUFFICIENT_EVIDENCE"
)

// Verdict is the article-level aggregate judgment
type Verdict string

const (
	VerdictTrue         Verdict = "TRUE"
	VerdictMixed        Verdict = "MIXED"
	VerdictMisleading   Verdict = "MISLEADING"
	VerdictFalse        Verdict = "FALSE"
	VerdictUnverifiable Verdict = "UNVERIFIABLE"
)

// ClaimAssessment judges one claim against the gathered evidence.
// cited_evidence_ids may be empty for any label; requiring citations for
// SUPPORTED/CONTRADICTED is instruction-level policy, kept lenient here to
// match the source schema.
type ClaimAssessment struct {
	ClaimID          string   `json:"claim_id" validate:"required"`
	Label            Label    `json:"label" validate:"required,oneof=SUPPORTED CONTRADICTED INSUFFICIENT_EVIDENCE"`
	Confidence       float64  `json:"confidence" validate:"min=0,max=1"`
	CitedEvidenceIDs []string `json:"cited_evidence_ids"`
	Rationale        string   `json:"rationale" validate:"required"` // 1-3 sentences
}

// ArticleVerdict is the aggregate judgment over all assessments
type ArticleVerdict struct {
	Verdict    Verdict  `json:"verdict" validate:"required,oneof=TRUE MIXED MISLEADING FALSE UNVERIFIABLE"`
	Confidence float64  `json:"confidence" validate:"min=0,max=1"`
	KeyFactors []string `json:"key_factors"`
}

// VerificationReport is the final artifact returned to the caller.
// Produced once per request, never mutated after construction.
type VerificationReport struct {
	Assessments []ClaimAssessment `json:"assessments" validate:"dive"`
	Article     ArticleVerdict    `json:"article"`
}

// AnalyzeResult is the success envelope of the analyze endpoint
type AnalyzeResult struct {
	Response          VerificationReport `json:"response"`
	OriginalInput     string             `json:"originalInput"`
	RemainingRequests int                `json:"remainingRequests"`
}
