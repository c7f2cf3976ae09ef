// Package registry provides a rate-limited HTTP client for the serials
// registry API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/serialgap/internal/serial"
)

const (
	// DefaultBaseURL is the serials registry API base URL.
	DefaultBaseURL = "https://api.serials-registry.org/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 10 requests per second per registry documentation.
	RateLimit = 10.0

	// DefaultPageSize is the number of sources requested per page.
	DefaultPageSize = 200
)

// Client is a rate-limited HTTP client for the serials registry.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new serials registry client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
	}

	// Check for API key in environment
	if key := os.Getenv("SERIALGAP_REGISTRY_KEY"); key != "" {
		c.apiKey = key
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// sourceEntry is the registry's wire format for one source row.
type sourceEntry struct {
	SourceID   int64  `json:"source_id"`
	Title      string `json:"title"`
	ISSN       string `json:"issn"`
	EISSN      string `json:"eissn"`
	OpenAccess string `json:"open_access"`
	Type       string `json:"aggregation_type"`
}

// sourcesPage is one page of the paginated sources listing.
type sourcesPage struct {
	Results []sourceEntry `json:"results"`
	Next    string        `json:"next"` // opaque cursor, empty on last page
}

// FetchSerials pulls the full journal listing from the registry, following
// pagination cursors. maxPages <= 0 means no page limit. Only entries with
// aggregation type "journal" are returned; the registry mixes in book
// series and trade publications that this pipeline excludes.
func (c *Client) FetchSerials(ctx context.Context, maxPages int) ([]serial.Serial, error) {
	var serials []serial.Serial
	cursor := ""
	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		result, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("fetching sources page %d: %w", page+1, err)
		}

		for _, e := range result.Results {
			if e.Type != "journal" {
				continue
			}
			serials = append(serials, serial.Serial{
				ID:         e.SourceID,
				Title:      e.Title,
				ISSN:       e.ISSN,
				EISSN:      e.EISSN,
				OpenAccess: serial.ParseOpenAccess(e.OpenAccess),
			})
		}

		if result.Next == "" {
			break
		}
		cursor = result.Next
	}
	return serials, nil
}

// fetchPage performs one rate-limited request against the sources endpoint.
func (c *Client) fetchPage(ctx context.Context, cursor string) (*sourcesPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("type", "journal")
	q.Set("per_page", fmt.Sprint(DefaultPageSize))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/sources?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting sources: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("registry returned %d: %s", resp.StatusCode, string(body))
	}

	var page sourcesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding sources page: %w", err)
	}
	return &page, nil
}
