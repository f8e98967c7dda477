// Package pipeline orchestrates the analysis phases: admission, input
// validation, moderation, claim extraction, evidence collection and
// verification.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veridict/veridict/internal/admission"
	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/evidence"
	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/moderation"
	"github.com/veridict/veridict/internal/validate"
	"github.com/veridict/veridict/internal/verify"
)

// Pipeline runs the complete analysis for one input text
type Pipeline struct {
	gate       *admission.Gate
	moderator  *moderation.Gate
	extractor  *extract.Extractor
	collector  *evidence.Stage
	verifier   *verify.Verifier
	config     *model.Config
	configured bool
	logger     *slog.Logger
}

// New wires a pipeline from explicit provider services. Tests inject
// scripted fakes here; production goes through NewPipeline.
func New(cfg *model.Config, chat llm.ChatService, mod moderation.Service, searcher evidence.Searcher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	completer := llm.NewSchemaCompleter(chat, cfg.OpenAI.Timeout)

	return &Pipeline{
		gate:       admission.NewGate(admission.NewMemoryStore(), cfg.Limits.MaxRequests, cfg.Limits.Window),
		moderator:  moderation.NewGate(mod, cfg.OpenAI.ModerationModel, cfg.OpenAI.Timeout),
		extractor:  extract.NewExtractor(completer, cfg.OpenAI.Model),
		collector:  evidence.NewStage(completer, searcher, cfg.OpenAI.Model, cfg.Evidence, logger),
		verifier:   verify.NewVerifier(completer, cfg.OpenAI.Model),
		config:     cfg,
		configured: true,
		logger:     logger,
	}
}

// NewPipeline creates a pipeline backed by the configured OpenAI provider.
// A missing API key is not fatal here; affected requests fail with a
// ConfigurationError so the server can still start and report health.
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	searchCache := cache.NewMemoryCache(cfg.Evidence.CacheTTL, cfg.Evidence.CacheTTL)
	searcher := evidence.NewWebSearcher(cfg.Evidence, searchCache)

	p := New(cfg, client, client, searcher, logger)
	p.configured = cfg.OpenAI.APIKey != ""
	return p
}

// Analyze runs the full pipeline for one input. clientKey identifies the
// caller for admission accounting.
func (p *Pipeline) Analyze(ctx context.Context, input string, clientKey string) (*model.AnalyzeResult, error) {
	// 1. Admission. Rejected requests consume no quota and no provider calls.
	if !p.gate.CheckLimit(clientKey) {
		return nil, &AdmissionRejectedError{Key: clientKey}
	}

	// 2. Input validation.
	if res := validate.Text(input, p.config.Limits.MaxInputChars); !res.Valid {
		return nil, &ValidationError{Reason: res.Reason}
	}

	// 3. Provider availability.
	if !p.configured {
		return nil, &ConfigurationError{Reason: "OpenAI API key not configured"}
	}

	// 4. Moderation.
	classification, err := p.moderator.Classify(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("moderate: %w", err)
	}
	if classification.Flagged {
		p.logger.Info("input rejected by moderation", "categories", classification.Categories)
		return nil, &ModerationRejectedError{Categories: classification.Categories}
	}

	// 5. Claim extraction.
	claims, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}
	p.logger.Info("claims extracted", "count", len(claims.Claims))

	// 6. Evidence collection.
	bundle, err := p.collector.Collect(ctx, claims)
	if err != nil {
		return nil, err
	}
	p.logger.Info("evidence collected", "docs", len(bundle.Results))

	// 7. Verification.
	report, err := p.verifier.Verify(ctx, claims, bundle)
	if err != nil {
		return nil, err
	}

	return &model.AnalyzeResult{
		Response:          *report,
		OriginalInput:     input,
		RemainingRequests: p.gate.Remaining(clientKey),
	}, nil
}

// Remaining reports the caller's unused quota without consuming any
func (p *Pipeline) Remaining(clientKey string) int {
	return p.gate.Remaining(clientKey)
}
