package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"discoprowl/internal/services"
)

var (
	// ErrNoCredentials is returned when no SteamGridDB key is configured.
	ErrNoCredentials = fmt.Errorf("%w: steamgriddb api key not set", services.ErrConfiguration)
	// ErrNotFound is returned when no game or no grid image matches the query.
	ErrNotFound = fmt.Errorf("%w: no artwork for query", services.ErrNotFound)
)

// GridLookup returns grid image URLs for a search term.
type GridLookup interface {
	Grids(ctx context.Context, query string) ([]string, error)
}

type envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Errors  []string `json:"errors"`
}

type gameMatch struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type grid struct {
	ID    int64  `json:"id"`
	URL   string `json:"url"`
	Thumb string `json:"thumb"`
}

// Client talks to the SteamGridDB v2 API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ GridLookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a SteamGridDB client. An empty apiKey is allowed; lookups then
// fail with ErrNoCredentials.
func New(apiKey, baseURL string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Grids resolves query to the first autocomplete match and returns its grid
// image URLs in API order.
func (c *Client) Grids(ctx context.Context, query string) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredentials
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNotFound
	}

	var matches envelope[[]gameMatch]
	if err := c.getJSON(ctx, "/search/autocomplete/"+url.PathEscape(query), &matches); err != nil {
		return nil, services.Wrap(services.ErrTransient, "steamgriddb", "autocomplete", "", err)
	}
	if len(matches.Data) == 0 {
		return nil, ErrNotFound
	}

	var grids envelope[[]grid]
	gamePath := "/grids/game/" + strconv.FormatInt(matches.Data[0].ID, 10)
	if err := c.getJSON(ctx, gamePath, &grids); err != nil {
		return nil, services.Wrap(services.ErrTransient, "steamgriddb", "grids", "", err)
	}

	urls := make([]string, 0, len(grids.Data))
	for _, g := range grids.Data {
		if u := strings.TrimSpace(g.URL); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, ErrNotFound
	}
	return urls, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
