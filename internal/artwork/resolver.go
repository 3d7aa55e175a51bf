package artwork

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"discoprowl/internal/config"
	"discoprowl/internal/logging"
	"discoprowl/internal/services"
)

// Image is a notification image. LocalPath is set only for a file that must
// be uploaded with the message; URL then uses the attachment:// scheme.
type Image struct {
	URL       string
	LocalPath string
}

// IsZero reports whether the image is unset.
func (i Image) IsZero() bool {
	return i.URL == "" && i.LocalPath == ""
}

// IsLocal reports whether the image must be uploaded as an attachment.
func (i Image) IsLocal() bool {
	return i.LocalPath != ""
}

// Artwork is the main image and thumbnail chosen for a search term.
type Artwork struct {
	Main  Image
	Thumb Image
}

// Fallback is the placeholder used whenever no artwork can be found.
type Fallback struct {
	Kind  string
	Value string
}

// Image converts the fallback to a notification image.
func (f Fallback) Image() Image {
	value := strings.TrimSpace(f.Value)
	if value == "" {
		return Image{}
	}
	if f.Kind == config.FallbackLocal {
		return Image{URL: "attachment://" + filepath.Base(value), LocalPath: value}
	}
	return Image{URL: value}
}

// Resolver applies the fallback policy on top of a GridLookup.
type Resolver struct {
	lookup   GridLookup
	fallback Image
	timeout  time.Duration
	logger   *slog.Logger
}

// NewResolver creates a Resolver. A nil lookup always yields the fallback.
func NewResolver(lookup GridLookup, fallback Fallback, timeout time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		lookup:   lookup,
		fallback: fallback.Image(),
		timeout:  timeout,
		logger:   logging.NewComponentLogger(logger, "artwork"),
	}
}

// NewResolverFromConfig wires the SteamGridDB client and fallback from cfg.
func NewResolverFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) *Resolver {
	client := New(cfg.Artwork.APIKey, cfg.Artwork.BaseURL, opts...)
	fallback := Fallback{Kind: cfg.Artwork.FallbackKind, Value: cfg.Artwork.FallbackValue}
	return NewResolver(client, fallback, cfg.ArtworkTimeout(), logger)
}

// Resolve returns artwork for query and never fails: any lookup problem
// yields the fallback for both images.
func (r *Resolver) Resolve(ctx context.Context, query string) Artwork {
	fallback := Artwork{Main: r.fallback, Thumb: r.fallback}
	if r.lookup == nil {
		return fallback
	}

	lookupCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := logging.WithContext(ctx, r.logger)
	grids, err := r.lookup.Grids(lookupCtx, query)
	switch {
	case errors.Is(err, ErrNoCredentials):
		logger.Debug("artwork lookup skipped; no api key configured")
		return fallback
	case errors.Is(err, ErrNotFound):
		logger.Info("no artwork found; using fallback image")
		return fallback
	case err != nil:
		logging.WarnWithContext(logger, "artwork lookup failed", "artwork_fallback",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check SteamGridDB availability and api key"),
			logging.String(logging.FieldImpact, "notification uses the fallback image"),
			logging.String("error_class", services.EventType(err)),
		)
		return fallback
	case len(grids) == 0:
		return fallback
	}

	art := Artwork{Main: Image{URL: grids[0]}, Thumb: r.fallback}
	if len(grids) > 1 {
		art.Thumb = Image{URL: grids[1]}
	}
	return art
}
