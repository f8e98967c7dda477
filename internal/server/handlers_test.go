package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"github.com/veridict/veridict/internal/article"
	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/evidence"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// scriptedChat replays stage outputs in order across requests
type scriptedChat struct {
	responses []string
	calls     int
}

func (s *scriptedChat) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	if len(s.responses) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("script exhausted")
	}
	content := s.responses[0]
	s.responses = s.responses[1:]
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
				FinishReason: openai.FinishReasonStop,
			},
		},
	}, nil
}

type fakeModerator struct {
	violence bool
	calls    int
}

func (f *fakeModerator) Moderations(_ context.Context, _ openai.ModerationRequest) (openai.ModerationResponse, error) {
	f.calls++
	return openai.ModerationResponse{
		Results: []openai.Result{
			{
				Flagged:    f.violence,
				Categories: openai.ResultCategories{Violence: f.violence},
			},
		},
	}, nil
}

type nullSearcher struct{}

func (nullSearcher) Search(_ context.Context, _ evidence.Query) ([]evidence.SearchResult, error) {
	return nil, nil
}

func supportedClaim(id string) string {
	return fmt.Sprintf(`{
		"id": %q, "text": "Fact %s holds", "importance": "high",
		"subject": "Fact", "predicate": "holds", "object": "", "time": "", "location": "",
		"entities": [{"name": "Fact", "type": "OTHER"}],
		"retrieval_query": "fact %s", "source_sentence": "Fact %s holds."
	}`, id, id, id, id)
}

func supportedAssessment(id string) string {
	return fmt.Sprintf(`{
		"claim_id": %q, "label": "SUPPORTED", "confidence": 0.9,
		"cited_evidence_ids": ["e01"], "rationale": "Confirmed by the source."
	}`, id)
}

// stageScript returns the extraction, evidence and verification outputs for
// one fully supported three-claim run
func stageScript() []string {
	claims := fmt.Sprintf(`{"article_title": "All true", "claims": [%s, %s, %s]}`,
		supportedClaim("c01"), supportedClaim("c02"), supportedClaim("c03"))
	bundle := `{"results": [{"id": "e01", "url": "https://stats.example.gov/r", "title": "Report",
		"published_at": "2024-10-01", "passage": "Confirmed.", "source_type": "primary"}]}`
	report := fmt.Sprintf(`{
		"assessments": [%s, %s, %s],
		"article": {"verdict": "TRUE", "confidence": 0.9, "key_factors": ["all claims supported"]}
	}`, supportedAssessment("c01"), supportedAssessment("c02"), supportedAssessment("c03"))
	return []string{claims, bundle, report}
}

func newTestRouter(chat *scriptedChat, mod *fakeModerator) *gin.Engine {
	cfg := model.DefaultConfig()
	cfg.OpenAI.Timeout = 5 * time.Second

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := pipeline.New(cfg, chat, mod, nullSearcher{}, logger)
	extractor := article.NewExtractor(cfg.Article, cache.NewMemoryCache(time.Minute, time.Minute))

	router := gin.New()
	SetupRoutes(router, p, extractor, logger)
	return router
}

func postJSON(router *gin.Engine, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyze_AllClaimsSupported(t *testing.T) {
	chat := &scriptedChat{responses: stageScript()}
	router := newTestRouter(chat, &fakeModerator{})

	w := postJSON(router, "/api/analyze", `{"input": "Three verifiable statements."}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var result model.AnalyzeResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Response.Article.Verdict != model.VerdictTrue {
		t.Errorf("verdict = %q, want TRUE", result.Response.Article.Verdict)
	}
	if len(result.Response.Assessments) != 3 {
		t.Errorf("assessments = %d, want 3", len(result.Response.Assessments))
	}
	if result.RemainingRequests != 14 {
		t.Errorf("remainingRequests = %d, want 14", result.RemainingRequests)
	}
	if result.OriginalInput != "Three verifiable statements." {
		t.Errorf("originalInput = %q", result.OriginalInput)
	}
}

func TestAnalyze_QuotaExhaustion(t *testing.T) {
	chat := &scriptedChat{}
	mod := &fakeModerator{}
	router := newTestRouter(chat, mod)
	headers := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	for i := 0; i < 15; i++ {
		chat.responses = stageScript()
		w := postJSON(router, "/api/analyze", `{"input": "ok"}`, headers)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d status = %d, body = %s", i+1, w.Code, w.Body.String())
		}
	}
	providerCalls := chat.calls
	moderationCalls := mod.calls

	w := postJSON(router, "/api/analyze", `{"input": "ok"}`, headers)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("16th call status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rate limit exceeded") {
		t.Errorf("body = %s", w.Body.String())
	}
	if chat.calls != providerCalls || mod.calls != moderationCalls {
		t.Errorf("rejected request reached providers")
	}

	// A different caller is unaffected.
	chat.responses = stageScript()
	w = postJSON(router, "/api/analyze", `{"input": "ok"}`, map[string]string{"X-Forwarded-For": "198.51.100.9"})
	if w.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", w.Code)
	}
}

func TestAnalyze_ModerationFlagged(t *testing.T) {
	chat := &scriptedChat{}
	router := newTestRouter(chat, &fakeModerator{violence: true})

	w := postJSON(router, "/api/analyze", `{"input": "flagged text"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Content flagged as inappropriate") || !strings.Contains(body, "violence") {
		t.Errorf("body = %s", body)
	}
	if strings.Contains(body, "hate") {
		t.Errorf("untriggered category listed: %s", body)
	}
	if chat.calls != 0 {
		t.Errorf("flagged input reached the completion provider")
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	router := newTestRouter(&scriptedChat{}, &fakeModerator{})

	cases := []struct {
		name string
		body string
	}{
		{"empty input", `{"input": ""}`},
		{"whitespace input", `{"input": "   "}`},
		{"malformed body", `{`},
		{"over length", fmt.Sprintf(`{"input": %q}`, strings.Repeat("a", 100_001))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(router, "/api/analyze", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestExtractArticle_Success(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Story</title></head><body><article><p>` +
			strings.Repeat("A reasonably long article sentence. ", 10) +
			`</p></article></body></html>`))
	}))
	defer backend.Close()

	router := newTestRouter(&scriptedChat{}, &fakeModerator{})

	w := postJSON(router, "/api/extract-article", fmt.Sprintf(`{"url": %q}`, backend.URL), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success     bool              `json:"success"`
		Data        model.ArticleData `json:"data"`
		OriginalURL string            `json:"originalUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.Title != "Story" || resp.OriginalURL != backend.URL {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestExtractArticle_ErrorStatusPassthrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer backend.Close()

	router := newTestRouter(&scriptedChat{}, &fakeModerator{})

	w := postJSON(router, "/api/extract-article", fmt.Sprintf(`{"url": %q}`, backend.URL), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "blocks automated requests") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExtractArticle_MissingURL(t *testing.T) {
	router := newTestRouter(&scriptedChat{}, &fakeModerator{})

	w := postJSON(router, "/api/extract-article", `{"url": ""}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "URL is required") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&scriptedChat{}, &fakeModerator{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
