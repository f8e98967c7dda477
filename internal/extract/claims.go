// Package extract turns validated article text into an ordered list of
// atomic claims via a schema-validated completion.
package extract

import (
	"context"
	"fmt"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// Extractor is the claim extraction stage
type Extractor struct {
	completer *llm.SchemaCompleter
	model     string
}

// NewExtractor creates an extractor bound to the given model
func NewExtractor(completer *llm.SchemaCompleter, model string) *Extractor {
	return &Extractor{completer: completer, model: model}
}

// Extract produces the claim list for already validated, moderated text
func (e *Extractor) Extract(ctx context.Context, text string) (*model.ClaimList, error) {
	var list model.ClaimList
	err := e.completer.Complete(ctx, llm.Request{
		Model:        e.model,
		Instructions: extractionInstructions,
		Input:        text,
		SchemaName:   "claims_list",
		Schema:       claimListSchema(),
	}, &list)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	return &list, nil
}
