package indexer_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"discoprowl/internal/config"
	"discoprowl/internal/indexer"
	"discoprowl/internal/services"
)

func TestProwlarrSearchSendsKeyAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Fatalf("unexpected api key header %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "Halo" {
			t.Fatalf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "search" {
			t.Fatalf("unexpected type %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"fileName":"Halo.Infinite-RUNE","indexer":"1337x","seeders":42,"age":3,
			 "categories":[{"id":4050,"name":"PC/Games"}]},
			{"fileName":"Halo.OST.FLAC","indexer":"RARBG","seeders":"7","age":"12",
			 "categories":[{"id":3000,"name":"Audio"}]}
		]`))
	}))
	defer srv.Close()

	client, err := indexer.NewProwlarr(srv.URL+"/", "secret")
	if err != nil {
		t.Fatalf("NewProwlarr: %v", err)
	}
	hits, err := client.Search(context.Background(), " Halo ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Indexer != "1337x" || hits[0].Categories[0].Name != "PC/Games" {
		t.Fatalf("unexpected first hit: %+v", hits[0])
	}
	if age, ok := hits[1].Age.Int(); !ok || age != 12 {
		t.Fatalf("expected string age 12, got %d %v", age, ok)
	}
}

func TestProwlarrSearchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := indexer.NewProwlarr(srv.URL, "secret")
	if err != nil {
		t.Fatalf("NewProwlarr: %v", err)
	}
	_, err = client.Search(context.Background(), "Halo")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestProwlarrSearchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	client, _ := indexer.NewProwlarr(srv.URL, "secret")
	if _, err := client.Search(context.Background(), "Halo"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestProwlarrSearchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client, _ := indexer.NewProwlarr(srv.URL, "secret")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Search(ctx, "Halo")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestProwlarrPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/system/status" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"version":"1.0"}`))
	}))
	defer srv.Close()

	good, _ := indexer.NewProwlarr(srv.URL, "secret")
	if err := good.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	bad, _ := indexer.NewProwlarr(srv.URL, "wrong")
	if err := bad.Ping(context.Background()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewSelectsBackendByKind(t *testing.T) {
	cfg := config.Default()
	cfg.Indexer.URL = "https://indexer.example"
	cfg.Indexer.APIKey = "key"

	client, err := indexer.New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.Kind() != config.IndexerProwlarr {
		t.Fatalf("expected prowlarr, got %s", client.Kind())
	}

	cfg.Indexer.Kind = config.IndexerTorznab
	client, err = indexer.New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.Kind() != config.IndexerTorznab {
		t.Fatalf("expected torznab, got %s", client.Kind())
	}

	cfg.Indexer.Kind = "jackett"
	if _, err := indexer.New(&cfg); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
