// Package evidence runs the agentic retrieval phase: the model issues
// web_evidence_search invocations, each answered synchronously, until it
// emits a final schema-conforming evidence bundle.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// Tool response statuses the model is instructed to expect
const (
	statusOK              = "ok"
	statusNoEvidenceFound = "no_evidence_found"
	statusSearchFailed    = "search_failed"
)

// Stage is the evidence retrieval stage
type Stage struct {
	completer *llm.SchemaCompleter
	searcher  Searcher
	model     string
	cfg       model.EvidenceConfig
	logger    *slog.Logger
}

// NewStage creates the evidence stage
func NewStage(completer *llm.SchemaCompleter, searcher Searcher, modelID string, cfg model.EvidenceConfig, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stage{completer: completer, searcher: searcher, model: modelID, cfg: cfg, logger: logger}
}

// stageInput is the serialized payload handed to the model
type stageInput struct {
	ClaimsList *model.ClaimList   `json:"claims_list"`
	Policy     model.SearchPolicy `json:"policy"`
}

// Collect gathers evidence for the claim list. An empty bundle is a valid
// terminal state, not an error.
func (s *Stage) Collect(ctx context.Context, claims *model.ClaimList) (*model.EvidenceBundle, error) {
	input, err := json.Marshal(stageInput{
		ClaimsList: claims,
		Policy:     model.SearchPolicy{TimeWindowDays: s.cfg.TimeWindowDays},
	})
	if err != nil {
		return nil, fmt.Errorf("encode stage input: %w", err)
	}

	var bundle model.EvidenceBundle
	err = s.completer.Complete(ctx, llm.Request{
		Model:        s.model,
		Instructions: evidenceInstructions,
		Input:        string(input),
		SchemaName:   "evidence_bundle",
		Schema:       bundleSchema(),
		Tools: []llm.Tool{
			{
				Name:        "web_evidence_search",
				Description: "Search reputable sources; return dated passages.",
				Parameters:  s.searchParamsSchema(),
				Handler:     s.handleSearch,
			},
		},
	}, &bundle)
	if err != nil {
		return nil, fmt.Errorf("collect evidence: %w", err)
	}
	return &bundle, nil
}

// toolResponse is the payload answered back to the model for one
// invocation
type toolResponse struct {
	Status  string         `json:"status"`
	Results []SearchResult `json:"results"`
}

// handleSearch answers one web_evidence_search invocation. A failing
// search is data for the model (status search_failed), not a pipeline
// abort.
func (s *Stage) handleSearch(ctx context.Context, arguments json.RawMessage) (string, error) {
	var q Query
	if err := json.Unmarshal(arguments, &q); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	q = s.clamp(q)

	results, err := s.searcher.Search(ctx, q)
	switch {
	case err != nil:
		s.logger.Warn("evidence search failed", "query", q.Query, "error", err)
		return encodeToolResponse(toolQueryStatus(statusSearchFailed))
	case len(results) == 0:
		return encodeToolResponse(toolQueryStatus(statusNoEvidenceFound))
	default:
		return encodeToolResponse(toolResponse{Status: statusOK, Results: results})
	}
}

func toolQueryStatus(status string) toolResponse {
	return toolResponse{Status: status, Results: []SearchResult{}}
}

func encodeToolResponse(resp toolResponse) (string, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("encode tool response: %w", err)
	}
	return string(raw), nil
}

// clamp forces the declared argument bounds even if the provider let an
// out-of-range value through
func (s *Stage) clamp(q Query) Query {
	if q.TimeWindowDays < s.cfg.MinWindowDays {
		q.TimeWindowDays = s.cfg.MinWindowDays
	}
	if q.TimeWindowDays > s.cfg.MaxWindowDays {
		q.TimeWindowDays = s.cfg.MaxWindowDays
	}
	if q.MaxResults < s.cfg.MinResults {
		q.MaxResults = s.cfg.MinResults
	}
	if q.MaxResults > s.cfg.MaxResults {
		q.MaxResults = s.cfg.MaxResults
	}
	return q
}

// searchParamsSchema declares the strict tool argument schema
func (s *Stage) searchParamsSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "Search query for finding relevant evidence.",
			},
			"time_window_days": {
				Type:        jsonschema.Integer,
				Description: fmt.Sprintf("Maximum age of sources in days (%d-%d).", s.cfg.MinWindowDays, s.cfg.MaxWindowDays),
			},
			"max_results": {
				Type:        jsonschema.Integer,
				Description: fmt.Sprintf("Maximum number of search results to return (%d-%d).", s.cfg.MinResults, s.cfg.MaxResults),
			},
		},
		Required:             []string{"query", "time_window_days", "max_results"},
		AdditionalProperties: false,
	}
}

// bundleSchema declares the final output shape
func bundleSchema() jsonschema.Definition {
	doc := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"id":           {Type: jsonschema.String},
			"url":          {Type: jsonschema.String},
			"title":        {Type: jsonschema.String},
			"published_at": {Type: jsonschema.String},
			"passage":      {Type: jsonschema.String},
			"source_type":  {Type: jsonschema.String, Enum: []string{"primary", "secondary", "unknown"}},
		},
		Required:             []string{"id", "url", "title", "published_at", "passage", "source_type"},
		AdditionalProperties: false,
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"results": {Type: jsonschema.Array, Items: &doc},
		},
		Required:             []string{"results"},
		AdditionalProperties: false,
	}
}
