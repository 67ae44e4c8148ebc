package alternatives

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clearuse/clearuse/internal/model"
	"github.com/clearuse/clearuse/internal/util"
	"github.com/clearuse/clearuse/internal/worker"
)

const (
	wikimediaEndpoint = "https://commons.wikimedia.org/w/api.php"

	// maxResponseBytes caps how much of the API response is read.
	maxResponseBytes = 2 << 20
)

// WikimediaClient searches Wikimedia Commons for openly licensed media. It
// honors robots.txt and rate-limits per domain.
type WikimediaClient struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxResults int
	endpoint   string
}

// WikimediaOptions configures the Commons client.
type WikimediaOptions struct {
	Timeout    time.Duration
	UserAgent  string
	MaxResults int
	RPS        float64
	Burst      int

	// Endpoint overrides the API URL, for tests.
	Endpoint string
}

// NewWikimediaClient creates a Commons search client.
func NewWikimediaClient(opts WikimediaOptions) *WikimediaClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 3
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = wikimediaEndpoint
	}

	return &WikimediaClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		robots:     util.NewRobotsChecker(opts.UserAgent, opts.Timeout),
		limiter:    worker.NewLimiter(opts.RPS, opts.Burst),
		userAgent:  opts.UserAgent,
		maxResults: opts.MaxResults,
		endpoint:   endpoint,
	}
}

// wikimediaResponse mirrors the slice of the Commons API we consume:
// generator=search with imageinfo (url and extmetadata) per page.
type wikimediaResponse struct {
	Query struct {
		Pages map[string]wikimediaPage `json:"pages"`
	} `json:"query"`
}

type wikimediaPage struct {
	Title     string `json:"title"`
	ImageInfo []struct {
		URL            string `json:"url"`
		DescriptionURL string `json:"descriptionurl"`
		ExtMetadata    struct {
			LicenseShortName struct {
				Value string `json:"value"`
			} `json:"LicenseShortName"`
		} `json:"extmetadata"`
	} `json:"imageinfo"`
}

// Search queries Commons for media matching the query and returns specific
// match suggestions. An empty result with nil error means nothing matched.
func (c *WikimediaClient) Search(ctx context.Context, query string) ([]model.AlternativeSource, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if !c.robots.IsAllowed(ctx, c.endpoint) {
		return nil, fmt.Errorf("robots.txt disallows %s", c.endpoint)
	}
	if err := c.limiter.Wait(ctx, c.endpoint); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrlimit", strconv.Itoa(c.maxResults))
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url|extmetadata")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search commons: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commons api returned %d", resp.StatusCode)
	}

	var decoded wikimediaResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode commons response: %w", err)
	}

	var results []model.AlternativeSource
	for _, page := range decoded.Query.Pages {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]

		license := "Wikimedia Commons (Check specific license)"
		if v := strings.TrimSpace(info.ExtMetadata.LicenseShortName.Value); v != "" {
			license = v
		}

		results = append(results, model.AlternativeSource{
			Source:      "Wikimedia Commons",
			Title:       strings.TrimPrefix(page.Title, "File:"),
			URL:         info.DescriptionURL,
			FileURL:     info.URL,
			License:     license,
			Description: "Similar image from Wikimedia Commons",
			Kind:        model.AlternativeSpecific,
		})
		if len(results) >= c.maxResults {
			break
		}
	}

	return results, nil
}
