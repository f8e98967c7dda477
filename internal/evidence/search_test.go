package evidence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/model"
)

func testSearcher(baseURL string) *WebSearcher {
	cfg := model.DefaultConfig().Evidence
	cfg.SearchBaseURL = baseURL
	cfg.RequestsPerSecond = 1000
	cfg.Burst = 100
	return NewWebSearcher(cfg, cache.NewMemoryCache(time.Minute, time.Minute))
}

func TestWebSearcher_Search(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits++
		if got := r.URL.Query().Get("q"); got != "abs inflation 2024" {
			t.Errorf("unexpected query: %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("unexpected limit: %q", got)
		}
		_ = json.NewEncoder(w).Encode([]SearchResult{
			{URL: "https://stats.example.gov/cpi", Title: "CPI September quarter"},
		})
	}))
	defer server.Close()

	s := testSearcher(server.URL + "/search")
	q := Query{Query: "abs inflation 2024", TimeWindowDays: 90, MaxResults: 5}

	results, err := s.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Domain != "stats.example.gov" {
		t.Errorf("unexpected results: %+v", results)
	}

	// Second identical query must be served from cache
	if _, err := s.Search(context.Background(), q); err != nil {
		t.Fatalf("cached Search failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected 1 backend hit, got %d", hits)
	}
}

func TestWebSearcher_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := testSearcher(server.URL + "/search")
	if _, err := s.Search(context.Background(), Query{Query: "q", TimeWindowDays: 30, MaxResults: 3}); err == nil {
		t.Errorf("expected error on backend failure")
	}
}

func TestWebSearcher_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /search\n"))
			return
		}
		t.Errorf("search endpoint must not be reached when disallowed")
	}))
	defer server.Close()

	s := testSearcher(server.URL + "/search")
	if _, err := s.Search(context.Background(), Query{Query: "q", TimeWindowDays: 30, MaxResults: 3}); err == nil {
		t.Errorf("expected error when robots.txt disallows the path")
	}
}

func TestWebSearcher_NoBackend(t *testing.T) {
	s := testSearcher("")
	if _, err := s.Search(context.Background(), Query{Query: "q"}); err == nil {
		t.Errorf("expected error when no backend is configured")
	}
}
