// Package moderation gates pipeline input on the provider's content-safety
// classifier. It is the only stage whose rejection reason comes from
// provider-side classification rather than local logic.
package moderation

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veridict/veridict/internal/llm"
)

// Service is the subset of the OpenAI client used for moderation.
// *openai.Client satisfies it directly.
type Service interface {
	Moderations(ctx context.Context, req openai.ModerationRequest) (openai.ModerationResponse, error)
}

// Classification is the gate's verdict on one input
type Classification struct {
	Flagged    bool
	Categories []string // names of the triggered categories, empty when not flagged
}

// Gate submits input text to the content-safety classifier
type Gate struct {
	svc     Service
	model   string
	timeout time.Duration
}

// NewGate creates a moderation gate
func NewGate(svc Service, model string, timeout time.Duration) *Gate {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gate{svc: svc, model: model, timeout: timeout}
}

// Classify submits text and returns the flagged state with triggered
// category names. Provider failures surface as UpstreamError.
func (g *Gate) Classify(ctx context.Context, text string) (*Classification, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.svc.Moderations(callCtx, openai.ModerationRequest{
		Input: text,
		Model: g.model,
	})
	if err != nil {
		return nil, &llm.UpstreamError{Err: err}
	}
	if len(resp.Results) == 0 {
		return &Classification{}, nil
	}

	result := resp.Results[0]
	return &Classification{
		Flagged:    result.Flagged,
		Categories: triggeredCategories(result.Categories),
	}, nil
}

// triggeredCategories lists the names of the categories the classifier
// flagged. go-openai types categories as a struct, so the mapping from
// field to wire name is explicit here.
func triggeredCategories(c openai.ResultCategories) []string {
	checks := []struct {
		name string
		hit  bool
	}{
		{"hate", c.Hate},
		{"hate/threatening", c.HateThreatening},
		{"harassment", c.Harassment},
		{"harassment/threatening", c.HarassmentThreatening},
		{"self-harm", c.SelfHarm},
		{"self-harm/intent", c.SelfHarmIntent},
		{"self-harm/instructions", c.SelfHarmInstructions},
		{"sexual", c.Sexual},
		{"sexual/minors", c.SexualMinors},
		{"violence", c.Violence},
		{"violence/graphic", c.ViolenceGraphic},
	}

	var names []string
	for _, check := range checks {
		if check.hit {
			names = append(names, check.name)
		}
	}
	return names
}
