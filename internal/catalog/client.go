package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the catalog lookup the UI depends on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchCatalog(ctx context.Context, query string) ([]Movie, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Options configure a Client. Nothing is read from the environment here;
// callers resolve the token and base URL before constructing the client.
type Options struct {
	BaseURL    string
	Token      string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the movie catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	defaultUserAgent = "marquee/0.1"
	requestTimeout   = 10 * time.Second
)

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		token:     strings.TrimSpace(opts.Token),
		userAgent: userAgent,
	}, nil
}

// FetchCatalog returns the first page of results for query. An empty query
// requests the popularity-ordered discover feed instead of a title search.
func (c *Client) FetchCatalog(ctx context.Context, query string) ([]Movie, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	var payload ListResponse
	if err := c.doURL(ctx, endpointFor(query), &payload); err != nil {
		return nil, err
	}
	if payload.failed() {
		msg := strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = DefaultDomainMessage
		}
		return nil, &DomainError{Message: msg}
	}
	if payload.Results == nil {
		return []Movie{}, nil
	}
	return payload.Results, nil
}

// endpointFor picks the discover or search endpoint relative to the base URL.
func endpointFor(query string) *url.URL {
	query = strings.TrimSpace(query)
	values := url.Values{}
	if query == "" {
		values.Set("sort_by", "popularity.desc")
		return &url.URL{Path: "discover/movie", RawQuery: values.Encode()}
	}
	values.Set("query", query)
	return &url.URL{Path: "search/movie", RawQuery: values.Encode()}
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: rel.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Endpoint: rel.Path, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &TransportError{Endpoint: rel.Path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// parseBaseURL normalizes the base so relative endpoints resolve beneath its
// path (".../3" becomes ".../3/").
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
