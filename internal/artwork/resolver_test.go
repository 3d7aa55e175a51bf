package artwork_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"discoprowl/internal/artwork"
	"discoprowl/internal/config"
	"discoprowl/internal/logging"
)

type stubLookup struct {
	urls []string
	err  error
	wait bool
}

func (s stubLookup) Grids(ctx context.Context, _ string) ([]string, error) {
	if s.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.urls, s.err
}

var remoteFallback = artwork.Fallback{Kind: config.FallbackRemote, Value: "https://example.com/no-image.jpg"}

func TestResolveUsesFirstTwoGrids(t *testing.T) {
	r := artwork.NewResolver(stubLookup{urls: []string{"a", "b", "c"}}, remoteFallback, time.Second, logging.NewNop())
	art := r.Resolve(context.Background(), "Halo")
	if art.Main.URL != "a" || art.Thumb.URL != "b" {
		t.Fatalf("unexpected artwork: %+v", art)
	}
}

func TestResolveSingleGridUsesFallbackThumb(t *testing.T) {
	r := artwork.NewResolver(stubLookup{urls: []string{"a"}}, remoteFallback, time.Second, logging.NewNop())
	art := r.Resolve(context.Background(), "Halo")
	if art.Main.URL != "a" || art.Thumb.URL != remoteFallback.Value {
		t.Fatalf("unexpected artwork: %+v", art)
	}
}

func TestResolveFailuresUseFallback(t *testing.T) {
	tests := []struct {
		name   string
		lookup artwork.GridLookup
	}{
		{"no credentials", stubLookup{err: artwork.ErrNoCredentials}},
		{"not found", stubLookup{err: artwork.ErrNotFound}},
		{"network", stubLookup{err: errors.New("connection refused")}},
		{"timeout", stubLookup{wait: true}},
		{"empty", stubLookup{}},
		{"nil lookup", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := artwork.NewResolver(tt.lookup, remoteFallback, 20*time.Millisecond, logging.NewNop())
			art := r.Resolve(context.Background(), "Halo")
			if art.Main.URL != remoteFallback.Value || art.Thumb.URL != remoteFallback.Value {
				t.Fatalf("expected fallback, got %+v", art)
			}
		})
	}
}

func TestLocalFallbackUsesAttachmentScheme(t *testing.T) {
	img := artwork.Fallback{Kind: config.FallbackLocal, Value: "/srv/assets/no-image.png"}.Image()
	if img.URL != "attachment://no-image.png" {
		t.Fatalf("unexpected url: %q", img.URL)
	}
	if !img.IsLocal() || img.LocalPath != "/srv/assets/no-image.png" {
		t.Fatalf("expected local path, got %+v", img)
	}

	remote := remoteFallback.Image()
	if remote.IsLocal() || remote.URL != remoteFallback.Value {
		t.Fatalf("unexpected remote image: %+v", remote)
	}
}
