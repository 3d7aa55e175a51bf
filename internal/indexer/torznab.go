package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"discoprowl/internal/config"
	"discoprowl/internal/services"
)

// newznabCategories maps the standard Newznab category IDs to display names.
var newznabCategories = map[int]string{
	1000: "Console",
	1010: "Console/NDS",
	1020: "Console/PSP",
	1030: "Console/Wii",
	1040: "Console/XBox",
	1050: "Console/XBox 360",
	1080: "Console/PS3",
	1110: "Console/3DS",
	1120: "Console/PS Vita",
	1140: "Console/XBox One",
	1180: "Console/PS4",
	2000: "Movies",
	3000: "Audio",
	4000: "PC",
	4010: "PC/0day",
	4020: "PC/ISO",
	4030: "PC/Mac",
	4040: "PC/Mobile-Other",
	4050: "PC/Games",
	4060: "PC/Mobile-iOS",
	4070: "PC/Mobile-Android",
	5000: "TV",
	6000: "XXX",
	7000: "Books",
	8000: "Other",
}

// Torznab queries a Torznab-compatible RSS endpoint (Jackett, Prowlarr
// per-indexer feeds).
type Torznab struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
	parser     *gofeed.Parser
}

var _ Client = (*Torznab)(nil)

// NewTorznab creates a Torznab client. baseURL is the indexer root; "/api" is
// appended unless already present.
func NewTorznab(baseURL, apiKey string, opts ...Option) (*Torznab, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("torznab base url required")
	}
	if !strings.HasSuffix(baseURL, "/api") {
		baseURL += "/api"
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("torznab api key required")
	}
	o := buildOptions(opts)
	return &Torznab{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: o.httpClient,
		now:        o.now,
		parser:     gofeed.NewParser(),
	}, nil
}

// Kind reports the backend name.
func (t *Torznab) Kind() string { return config.IndexerTorznab }

// Search runs t=search for query and converts feed items to hits.
func (t *Torznab) Search(ctx context.Context, query string) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "torznab", "search", "query must not be empty", nil)
	}
	params := url.Values{}
	params.Set("t", "search")
	params.Set("q", query)

	body, err := t.fetch(ctx, params)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "torznab", "search", "", err)
	}

	feed, err := t.parser.ParseString(body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "torznab", "decode", "invalid feed", err)
	}

	hits := make([]Hit, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		hits = append(hits, t.convert(feed.Title, item))
	}
	return hits, nil
}

// Ping requests the capabilities document.
func (t *Torznab) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("t", "caps")
	if _, err := t.fetch(ctx, params); err != nil {
		return services.Wrap(services.ErrTransient, "torznab", "ping", "", err)
	}
	return nil
}

func (t *Torznab) fetch(ctx context.Context, params url.Values) (string, error) {
	params.Set("apikey", t.apiKey)
	endpoint := t.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	// Torznab reports errors as 200 with an <error> document.
	if strings.Contains(string(data[:min(len(data), 512)]), "<error ") {
		return "", fmt.Errorf("indexer error: %s", strings.TrimSpace(string(data[:min(len(data), 512)])))
	}
	return string(data), nil
}

func (t *Torznab) convert(channelTitle string, item *gofeed.Item) Hit {
	attrs := torznabAttrs(item)
	hit := Hit{
		Title:    strings.TrimSpace(item.Title),
		FileName: strings.TrimSpace(item.Title),
		Indexer:  indexerName(channelTitle, item),
		InfoURL:  item.Link,
	}

	if seeders, ok := attrs["seeders"]; ok && len(seeders) > 0 {
		if n, err := strconv.Atoi(seeders[0]); err == nil {
			hit.Seeders = IntValue(n)
		} else {
			hit.Seeders = StringValue(seeders[0])
		}
	}
	if sizes, ok := attrs["size"]; ok && len(sizes) > 0 {
		hit.Size, _ = strconv.ParseInt(sizes[0], 10, 64)
	}

	ids := append([]string{}, attrs["category"]...)
	ids = append(ids, item.Categories...)
	hit.Categories = categoriesFor(ids)

	if item.PublishedParsed != nil {
		days := int(t.now().Sub(*item.PublishedParsed).Hours() / 24)
		hit.Age = IntValue(max(days, 0))
	}
	return hit
}

func torznabAttrs(item *gofeed.Item) map[string][]string {
	out := make(map[string][]string)
	for _, ext := range item.Extensions["torznab"]["attr"] {
		name := strings.ToLower(strings.TrimSpace(ext.Attrs["name"]))
		if name == "" {
			continue
		}
		out[name] = append(out[name], strings.TrimSpace(ext.Attrs["value"]))
	}
	return out
}

func indexerName(channelTitle string, item *gofeed.Item) string {
	for _, key := range []string{"jackettindexer", "prowlarrindexer"} {
		if name := strings.TrimSpace(item.Custom[key]); name != "" {
			return name
		}
	}
	return strings.TrimSpace(channelTitle)
}

func categoriesFor(ids []string) []Category {
	seen := make(map[int]struct{}, len(ids))
	var out []Category
	for _, raw := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		name, ok := newznabCategories[id]
		if !ok {
			name = newznabCategories[id/1000*1000]
		}
		out = append(out, Category{ID: id, Name: name})
	}
	return out
}
