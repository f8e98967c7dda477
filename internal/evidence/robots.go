package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsChecker caches per-host robots.txt verdicts for the search
// backend. Unreachable or missing robots.txt allows by default.
type robotsChecker struct {
	mu         sync.Mutex
	groups     map[string]*robotstxt.Group
	httpClient *http.Client
	userAgent  string
}

func newRobotsChecker(userAgent string, timeout time.Duration) *robotsChecker {
	return &robotsChecker{
		groups:     make(map[string]*robotstxt.Group),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

func (r *robotsChecker) allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	group := r.group(ctx, parsed)
	if group == nil {
		return true
	}
	return group.Test(parsed.Path)
}

func (r *robotsChecker) group(ctx context.Context, target *url.URL) *robotstxt.Group {
	r.mu.Lock()
	group, seen := r.groups[target.Host]
	r.mu.Unlock()
	if seen {
		return group
	}

	group = r.fetchGroup(ctx, target)

	r.mu.Lock()
	r.groups[target.Host] = group
	r.mu.Unlock()
	return group
}

func (r *robotsChecker) fetchGroup(ctx context.Context, target *url.URL) *robotstxt.Group {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, target.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data.FindGroup(r.userAgent)
}
