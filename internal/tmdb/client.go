// Package tmdb relays requests to The Movie Database v3 API. Responses are
// returned as the raw JSON the provider sent; the API key is added here and
// never leaves the server.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public TMDB v3 endpoint.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 10 * 1024 * 1024

// ErrEmptyQuery is returned by Search when the query is empty. No upstream
// request is made.
var ErrEmptyQuery = errors.New("query parameter is required")

// ProviderError describes any failed upstream round trip: transport errors,
// non-2xx responses and bodies that are not valid JSON.
type ProviderError struct {
	Op         string // "search", "details" or "credits"
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Config holds the settings needed to construct a Client.
type Config struct {
	APIKey  string
	BaseURL string

	// SearchTimeout bounds multi-search calls; RequestTimeout bounds details
	// and credits lookups.
	SearchTimeout  time.Duration
	RequestTimeout time.Duration

	// HTTPClient is optional; tests inject one pointed at a fake server.
	HTTPClient *http.Client
}

// Client is a stateless relay to the TMDB API. It is safe for concurrent use.
type Client struct {
	apiKey         string
	baseURL        string
	searchTimeout  time.Duration
	requestTimeout time.Duration
	client         *http.Client
}

// NewClient creates a Client. Zero timeouts default to 10s for search and
// 15s for other lookups.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		searchTimeout:  cfg.SearchTimeout,
		requestTimeout: cfg.RequestTimeout,
		client:         cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.searchTimeout <= 0 {
		c.searchTimeout = 10 * time.Second
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = 15 * time.Second
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	return c
}

// Search runs a multi-search (movies, TV and people) for query.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("query", query)
	return c.get(ctx, "search", "/search/multi", params, c.searchTimeout)
}

// Details returns the provider's detail record for one movie or TV show.
func (c *Client) Details(ctx context.Context, mediaType string, id int64) (json.RawMessage, error) {
	return c.get(ctx, "details", itemPath(mediaType, id), nil, c.requestTimeout)
}

// Credits returns the cast and crew for one movie or TV show.
func (c *Client) Credits(ctx context.Context, mediaType string, id int64) (json.RawMessage, error) {
	return c.get(ctx, "credits", itemPath(mediaType, id)+"/credits", nil, c.requestTimeout)
}

func itemPath(mediaType string, id int64) string {
	return "/" + url.PathEscape(mediaType) + "/" + strconv.FormatInt(id, 10)
}

// tmdbStatus is the error body TMDB sends with non-2xx responses.
type tmdbStatus struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// get performs one GET against the provider and returns the body verbatim.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, &ProviderError{Op: op, Err: fmt.Errorf("building request URL: %w", err)}
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &ProviderError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("calling TMDB API", "op", op, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: op, Err: redact(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var st tmdbStatus
		if json.Unmarshal(body, &st) == nil && st.StatusMessage != "" {
			return nil, &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(st.StatusMessage)}
		}
		return nil, &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	if !json.Valid(body) {
		return nil, &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("malformed JSON response")}
	}

	return json.RawMessage(body), nil
}

// redact strips the request URL (which carries the API key) from transport
// errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
