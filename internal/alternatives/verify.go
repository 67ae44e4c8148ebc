package alternatives

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/clearuse/clearuse/internal/model"
	"github.com/clearuse/clearuse/internal/util"
)

const verifyMaxRetries = 3

// verifySleepFunc is the sleep between retries, injectable for tests.
var verifySleepFunc = time.Sleep

// Verifier checks that suggested alternative links are reachable. Checks
// run concurrently behind a semaphore and fail open: a link that cannot be
// confirmed is left unverified rather than dropped.
type Verifier struct {
	httpClient *http.Client
	maxWorkers int
	userAgent  string
}

// NewVerifier creates a link verifier.
func NewVerifier(timeout time.Duration, maxWorkers int, userAgent string, httpProxy, httpsProxy, noProxy string) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	return &Verifier{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		userAgent:  userAgent,
	}
}

// Verify checks every item's URL concurrently and sets its Verified flag.
// Items whose check could not complete keep Verified nil.
func (v *Verifier) Verify(ctx context.Context, items []model.AlternativeSource) {
	if len(items) == 0 {
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i := range items {
		if items[i].URL == "" {
			continue
		}

		wg.Add(1)
		go func(item *model.AlternativeSource) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			item.Verified = v.checkWithRetry(ctx, item.URL)
		}(&items[i])
	}

	wg.Wait()
}

// checkWithRetry retries transient failures with exponential backoff.
// Returns nil when the check never completed conclusively.
func (v *Verifier) checkWithRetry(ctx context.Context, rawURL string) *bool {
	for attempt := 0; attempt < verifyMaxRetries; attempt++ {
		ok, retryable := v.check(ctx, rawURL)
		if !retryable {
			return ok
		}
		if attempt < verifyMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			verifySleepFunc(backoff)
		}
	}
	return nil
}

// check issues a single HEAD request. The second return reports whether the
// failure is worth retrying.
func (v *Verifier) check(ctx context.Context, rawURL string) (*bool, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return model.BoolPtr(false), false
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		if isRetryableNetworkError(err.Error()) {
			return nil, true
		}
		// Unreachable but not transient: leave unverified.
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return model.BoolPtr(true), false
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return model.BoolPtr(false), false
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true
	default:
		// Some hosts reject HEAD outright; do not mark those dead.
		return nil, false
	}
}

// isRetryableNetworkError checks error strings for transient failures.
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
