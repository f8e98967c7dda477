package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veridict/veridict/internal/llm"
)

type fakeService struct {
	resp openai.ModerationResponse
	err  error
}

func (f *fakeService) Moderations(_ context.Context, _ openai.ModerationRequest) (openai.ModerationResponse, error) {
	return f.resp, f.err
}

func TestClassify_NotFlagged(t *testing.T) {
	gate := NewGate(&fakeService{
		resp: openai.ModerationResponse{Results: []openai.Result{{Flagged: false}}},
	}, "omni-moderation-latest", time.Second)

	cls, err := gate.Classify(context.Background(), "a harmless article")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if cls.Flagged {
		t.Errorf("expected not flagged")
	}
	if len(cls.Categories) != 0 {
		t.Errorf("expected no categories, got %v", cls.Categories)
	}
}

func TestClassify_FlaggedCategories(t *testing.T) {
	gate := NewGate(&fakeService{
		resp: openai.ModerationResponse{Results: []openai.Result{
			{
				Flagged: true,
				Categories: openai.ResultCategories{
					Violence: true,
					Hate:     false,
				},
			},
		}},
	}, "omni-moderation-latest", time.Second)

	cls, err := gate.Classify(context.Background(), "flagged text")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !cls.Flagged {
		t.Fatalf("expected flagged")
	}
	if len(cls.Categories) != 1 || cls.Categories[0] != "violence" {
		t.Errorf("expected exactly [violence], got %v", cls.Categories)
	}
}

func TestClassify_ProviderError(t *testing.T) {
	gate := NewGate(&fakeService{err: errors.New("connection refused")}, "omni-moderation-latest", time.Second)

	_, err := gate.Classify(context.Background(), "text")

	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestClassify_EmptyResults(t *testing.T) {
	gate := NewGate(&fakeService{resp: openai.ModerationResponse{}}, "omni-moderation-latest", time.Second)

	cls, err := gate.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if cls.Flagged {
		t.Errorf("empty result set must not flag")
	}
}
