package notifications

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"discoprowl/internal/artwork"
	"discoprowl/internal/indexer"
)

const (
	// ColorMatch is the embed color when at least one hit was selected.
	ColorMatch = 0x2ECC71
	// ColorNoMatch is the embed color when nothing passed the filters.
	ColorNoMatch = 0x000000

	notAvailable = "N/A"
)

// Image is a notification image; see artwork.Image.
type Image = artwork.Image

// Payload is one formatted notification for a search term.
type Payload struct {
	Query string
	// Title is the plain title used by text transports.
	Title string
	// MarkdownTitle bolds the query for transports that render markdown.
	MarkdownTitle string
	Description   string
	Color         int
	Image         Image
	Thumbnail     Image
	Matched       bool
}

// LocalImages returns the distinct local files referenced by the payload.
func (p Payload) LocalImages() []Image {
	var out []Image
	seen := map[string]struct{}{}
	for _, img := range []Image{p.Image, p.Thumbnail} {
		if !img.IsLocal() {
			continue
		}
		if _, dup := seen[img.LocalPath]; dup {
			continue
		}
		seen[img.LocalPath] = struct{}{}
		out = append(out, img)
	}
	return out
}

var upper = cases.Upper(language.Und)

func titleFor(query string) (plain, markdown string) {
	q := upper.String(query)
	return "Search Results for " + q, "Search Results for **" + q + "**"
}

func describe(query string, selected []indexer.Hit) string {
	q := upper.String(query)
	if len(selected) == 0 {
		return fmt.Sprintf("Search Results for **%s**: No results met the filter criteria.", q)
	}
	lines := make([]string, 0, len(selected)+1)
	lines = append(lines, fmt.Sprintf("Search Results for %s:", q))
	for i, hit := range selected {
		lines = append(lines, fmt.Sprintf("**Result %d:**\nIndexer: `%s`\nSeeders: `%s`\nFilename: `%s`\nAge: `%s`",
			i+1,
			orNA(hit.Indexer),
			valueOrNA(hit.Seeders),
			orNA(hit.FileName),
			valueOrNA(hit.Age),
		))
	}
	return strings.Join(lines, "\n")
}

func orNA(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}

func valueOrNA(v indexer.Value) string {
	if !v.Present() {
		return notAvailable
	}
	return v.String()
}
