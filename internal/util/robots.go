package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker gates outgoing requests from the alternatives finder on the
// target host's robots.txt. Parsed policies are cached per host for the life
// of the checker, which matches how the finder talks to a small fixed set of
// open-content APIs.
type RobotsChecker struct {
	mu        sync.RWMutex
	byHost    map[string]*robotstxt.RobotsData
	client    *http.Client
	userAgent string
}

func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		byHost:    make(map[string]*robotstxt.RobotsData),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// IsAllowed reports whether rawURL may be fetched. Unreachable or malformed
// robots.txt counts as permission; only an explicit disallow blocks.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) bool {
	allowed, _, err := r.CanFetch(ctx, rawURL)
	if err != nil {
		return true
	}
	return allowed
}

// CanFetch returns the robots verdict for rawURL along with any crawl delay
// the host requests for our agent.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	policy, err := r.policyFor(ctx, parsed)
	if err != nil {
		return true, 0, nil
	}

	var delay time.Duration
	if group := policy.FindGroup(r.userAgent); group != nil {
		delay = group.CrawlDelay
	}
	return policy.TestAgent(parsed.Path, r.userAgent), delay, nil
}

func (r *RobotsChecker) policyFor(ctx context.Context, target *url.URL) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	policy, ok := r.byHost[target.Host]
	r.mu.RUnlock()
	if ok {
		return policy, nil
	}

	robotsURL := target.Scheme + "://" + target.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	policy, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.mu.Lock()
	r.byHost[target.Host] = policy
	r.mu.Unlock()
	return policy, nil
}

// Clear drops all cached policies.
func (r *RobotsChecker) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHost = make(map[string]*robotstxt.RobotsData)
}
