package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"discoprowl/internal/config"
	"discoprowl/internal/services"
)

// Prowlarr queries the Prowlarr v1 search API.
type Prowlarr struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Client = (*Prowlarr)(nil)

// NewProwlarr creates a Prowlarr client.
func NewProwlarr(baseURL, apiKey string, opts ...Option) (*Prowlarr, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("prowlarr base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("prowlarr api key required")
	}
	o := buildOptions(opts)
	return &Prowlarr{baseURL: baseURL, apiKey: apiKey, httpClient: o.httpClient}, nil
}

// Kind reports the backend name.
func (p *Prowlarr) Kind() string { return config.IndexerProwlarr }

// Search performs GET /api/v1/search for query across all indexers.
func (p *Prowlarr) Search(ctx context.Context, query string) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "prowlarr", "search", "query must not be empty", nil)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "search")

	resp, latency, err := p.get(ctx, "/api/v1/search", params)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "prowlarr", "search", fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, services.Wrap(services.ErrTransient, "prowlarr", "search",
			fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var hits []Hit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, services.Wrap(services.ErrTransient, "prowlarr", "decode", "invalid search response", err)
	}
	return hits, nil
}

// Ping checks that the API is reachable and the key is accepted.
func (p *Prowlarr) Ping(ctx context.Context) error {
	resp, _, err := p.get(ctx, "/api/v1/system/status", nil)
	if err != nil {
		return services.Wrap(services.ErrTransient, "prowlarr", "ping", "", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return services.Wrap(services.ErrConfiguration, "prowlarr", "ping", "api key rejected", nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return services.Wrap(services.ErrTransient, "prowlarr", "ping", fmt.Sprintf("status %d", resp.StatusCode), nil)
	}
	return nil
}

func (p *Prowlarr) get(ctx context.Context, path string, params url.Values) (*http.Response, time.Duration, error) {
	endpoint, err := url.Parse(p.baseURL + path)
	if err != nil {
		return nil, 0, fmt.Errorf("parse prowlarr url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, latency, fmt.Errorf("execute request: %w", err)
	}
	return resp, latency, nil
}
