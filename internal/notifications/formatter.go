package notifications

import (
	"context"

	"discoprowl/internal/artwork"
	"discoprowl/internal/indexer"
)

// ArtworkResolver supplies images for a search term. Implementations never fail.
type ArtworkResolver interface {
	Resolve(ctx context.Context, query string) artwork.Artwork
}

// Formatter turns a term and its selected hits into a Payload.
type Formatter struct {
	artwork   ArtworkResolver
	thumbnail bool
}

// NewFormatter creates a Formatter. thumbnail enables the secondary image.
func NewFormatter(resolver ArtworkResolver, thumbnail bool) *Formatter {
	return &Formatter{artwork: resolver, thumbnail: thumbnail}
}

// Format builds the payload. The artwork lookup only runs when something
// matched; a no-match payload carries no images.
func (f *Formatter) Format(ctx context.Context, query string, selected []indexer.Hit) Payload {
	title, markdown := titleFor(query)
	payload := Payload{
		Query:         query,
		Title:         title,
		MarkdownTitle: markdown,
		Description:   describe(query, selected),
		Color:         ColorNoMatch,
	}
	if len(selected) == 0 {
		return payload
	}

	payload.Matched = true
	payload.Color = ColorMatch
	if f.artwork != nil {
		art := f.artwork.Resolve(ctx, query)
		payload.Image = art.Main
		if f.thumbnail {
			payload.Thumbnail = art.Thumb
		}
	}
	return payload
}
