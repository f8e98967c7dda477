// Package verify reduces (claims, evidence) into per-claim assessments
// and one article-level verdict via a schema-validated completion.
package verify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// Verifier is the verification synthesis stage
type Verifier struct {
	completer *llm.SchemaCompleter
	model     string
}

// NewVerifier creates a verifier bound to the given model
func NewVerifier(completer *llm.SchemaCompleter, model string) *Verifier {
	return &Verifier{completer: completer, model: model}
}

type claimsPackage struct {
	ClaimsList     *model.ClaimList      `json:"claims_list"`
	EvidenceBundle *model.EvidenceBundle `json:"evidence_bundle"`
}

type stageInput struct {
	ClaimsPackage claimsPackage `json:"claims_package"`
}

// Verify produces the verification report for the claims and their
// gathered evidence
func (v *Verifier) Verify(ctx context.Context, claims *model.ClaimList, evidence *model.EvidenceBundle) (*model.VerificationReport, error) {
	input, err := json.Marshal(stageInput{ClaimsPackage: claimsPackage{
		ClaimsList:     claims,
		EvidenceBundle: evidence,
	}})
	if err != nil {
		return nil, fmt.Errorf("encode stage input: %w", err)
	}

	var report model.VerificationReport
	err = v.completer.Complete(ctx, llm.Request{
		Model:        v.model,
		Instructions: verificationInstructions,
		Input:        string(input),
		SchemaName:   "verification_report",
		Schema:       reportSchema(),
	}, &report)
	if err != nil {
		return nil, fmt.Errorf("verify claims: %w", err)
	}
	return &report, nil
}

// reportSchema declares the verification output shape. cited_evidence_ids
// stays min-0 even for SUPPORTED/CONTRADICTED: the citation requirement is
// instruction-level policy, matching the source schema's leniency.
func reportSchema() jsonschema.Definition {
	assessment := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"claim_id": {Type: jsonschema.String},
			"label": {
				Type: jsonschema.String,
				Enum: []string{"SUPPORTED", "CONTRADICTED", "INSUFFICIENT_EVIDENCE"},
			},
			"confidence":         {Type: jsonschema.Number},
			"cited_evidence_ids": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
			"rationale":          {Type: jsonschema.String},
		},
		Required:             []string{"claim_id", "label", "confidence", "cited_evidence_ids", "rationale"},
		AdditionalProperties: false,
	}

	article := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"verdict": {
				Type: jsonschema.String,
				Enum: []string{"TRUE", "MIXED", "MISLEADING", "FALSE", "UNVERIFIABLE"},
			},
			"confidence":  {Type: jsonschema.Number},
			"key_factors": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
		},
		Required:             []string{"verdict", "confidence", "key_factors"},
		AdditionalProperties: false,
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"assessments": {Type: jsonschema.Array, Items: &assessment},
			"article":     article,
		},
		Required:             []string{"assessments", "article"},
		AdditionalProperties: false,
	}
}
