package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/model"
)

// Query is one web_evidence_search invocation, decoded from the tool
// arguments the model produced
type Query struct {
	Query          string `json:"query"`
	TimeWindowDays int    `json:"time_window_days"`
	MaxResults     int    `json:"max_results"`
}

// SearchResult is one hit returned to the model as tool output
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	Domain      string `json:"domain,omitempty"`
}

// Searcher answers tool invocations synchronously
type Searcher interface {
	Search(ctx context.Context, q Query) ([]SearchResult, error)
}

// WebSearcher queries an HTTP search backend, honoring robots.txt,
// an outbound rate limit toward the backend, and a short-lived result cache.
type WebSearcher struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	robots     *robotsChecker
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewWebSearcher creates a searcher against the configured backend
func NewWebSearcher(cfg model.EvidenceConfig, c cache.Cache) *WebSearcher {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &WebSearcher{
		httpClient: &http.Client{Timeout: cfg.SearchTimeout},
		baseURL:    cfg.SearchBaseURL,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		robots:     newRobotsChecker(cfg.UserAgent, cfg.SearchTimeout),
		cache:      c,
		cacheTTL:   cfg.CacheTTL,
	}
}

// Search runs one query against the backend
func (s *WebSearcher) Search(ctx context.Context, q Query) ([]SearchResult, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("no search backend configured")
	}

	searchURL := fmt.Sprintf("%s?q=%s&days=%s&limit=%s",
		s.baseURL,
		url.QueryEscape(q.Query),
		strconv.Itoa(q.TimeWindowDays),
		strconv.Itoa(q.MaxResults),
	)

	cacheKey := cache.Key(searchURL)
	if cached, ok := s.cache.Get(cacheKey); ok {
		var results []SearchResult
		if err := json.Unmarshal(cached, &results); err == nil {
			return results, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if !s.robots.allowed(ctx, searchURL) {
		return nil, fmt.Errorf("search backend disallows %s", searchURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search backend status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var results []SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	for i := range results {
		if parsed, err := url.Parse(results[i].URL); err == nil {
			results[i].Domain = parsed.Host
		}
	}

	if enriched, err := json.Marshal(results); err == nil {
		s.cache.Set(cacheKey, enriched, s.cacheTTL)
	}
	return results, nil
}
