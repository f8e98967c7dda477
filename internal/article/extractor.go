// Package article implements the extract-article collaborator: it turns a
// URL into plain text plus metadata for the analysis pipeline.
package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/model"
)

// Error carries the HTTP status the extract-article endpoint reports
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Extractor fetches a page and extracts its readable article content
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	minChars   int
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewExtractor creates an extractor from configuration
func NewExtractor(cfg model.ArticleConfig, c cache.Cache) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		minChars:  cfg.MinContentChars,
		cache:     c,
		cacheTTL:  cfg.CacheTTL,
	}
}

// Extract fetches rawURL and returns the article payload. Failures carry
// the status the endpoint must report.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*model.ArticleData, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "URL is required"}
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "Invalid URL format"}
	}

	cacheKey := cache.Key(rawURL)
	if cached, ok := e.cache.Get(cacheKey); ok {
		var data model.ArticleData
		if err := json.Unmarshal(cached, &data); err == nil {
			return &data, nil
		}
	}

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	data, err := parseArticle(body)
	if err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: "Could not extract article content from this URL"}
	}
	if len(strings.TrimSpace(data.Content)) < e.minChars {
		return nil, &Error{Status: http.StatusBadRequest, Message: "Extracted content is too short - this may not be a valid article"}
	}

	if raw, err := json.Marshal(data); err == nil {
		e.cache.Set(cacheKey, raw, e.cacheTTL)
	}
	return data, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{Status: http.StatusBadRequest, Message: "Invalid URL format"}
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &Error{Status: http.StatusRequestTimeout, Message: "Request timeout - the article took too long to load"}
		}
		return "", &Error{Status: http.StatusInternalServerError, Message: fmt.Sprintf("Failed to fetch URL: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{Status: resp.StatusCode, Message: fetchFailureMessage(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", &Error{Status: http.StatusInternalServerError, Message: "Failed to read article content"}
	}
	return string(body), nil
}

func fetchFailureMessage(resp *http.Response) string {
	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "Access denied - this website blocks automated requests"
	case resp.StatusCode == http.StatusNotFound:
		return "Article not found - the URL may be invalid or the article has been removed"
	case resp.StatusCode >= 500:
		return "Website server error - please try again later"
	default:
		return fmt.Sprintf("Failed to fetch URL: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
