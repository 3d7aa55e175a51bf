package artwork_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"discoprowl/internal/artwork"
)

func steamGridServer(t *testing.T, autocomplete, grids string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		switch r.URL.EscapedPath() {
		case "/search/autocomplete/Halo%20Infinite":
			_, _ = w.Write([]byte(autocomplete))
		case "/grids/game/42":
			_, _ = w.Write([]byte(grids))
		default:
			t.Fatalf("unexpected path %s", r.URL.EscapedPath())
		}
	}))
}

func TestGridsReturnsURLsInOrder(t *testing.T) {
	srv := steamGridServer(t,
		`{"success":true,"data":[{"id":42,"name":"Halo Infinite"},{"id":7,"name":"Halo"}]}`,
		`{"success":true,"data":[{"id":1,"url":"https://cdn.example/a.png"},{"id":2,"url":"https://cdn.example/b.png"}]}`,
	)
	defer srv.Close()

	client := artwork.New("key", srv.URL+"/")
	urls, err := client.Grids(context.Background(), "Halo Infinite")
	if err != nil {
		t.Fatalf("Grids: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://cdn.example/a.png" || urls[1] != "https://cdn.example/b.png" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestGridsNoGameIsNotFound(t *testing.T) {
	srv := steamGridServer(t, `{"success":true,"data":[]}`, `{}`)
	defer srv.Close()

	_, err := artwork.New("key", srv.URL).Grids(context.Background(), "Halo Infinite")
	if !errors.Is(err, artwork.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGridsNoImagesIsNotFound(t *testing.T) {
	srv := steamGridServer(t,
		`{"success":true,"data":[{"id":42,"name":"Halo Infinite"}]}`,
		`{"success":true,"data":[]}`,
	)
	defer srv.Close()

	_, err := artwork.New("key", srv.URL).Grids(context.Background(), "Halo Infinite")
	if !errors.Is(err, artwork.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGridsWithoutKey(t *testing.T) {
	_, err := artwork.New("", "http://unused.invalid").Grids(context.Background(), "Halo")
	if !errors.Is(err, artwork.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestGridsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := artwork.New("key", srv.URL).Grids(context.Background(), "Halo")
	if err == nil || errors.Is(err, artwork.ErrNotFound) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
