package indexer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"discoprowl/internal/indexer"
)

const torznabFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:torznab="http://torznab.com/schemas/2015/feed">
  <channel>
    <title>AggregateSearch</title>
    <item>
      <title>Halo.Infinite-RUNE</title>
      <jackettindexer id="1337x">1337x</jackettindexer>
      <pubDate>Mon, 05 Oct 2026 12:00:00 +0000</pubDate>
      <category>4050</category>
      <torznab:attr name="seeders" value="42"/>
      <torznab:attr name="size" value="1024"/>
    </item>
    <item>
      <title>Halo.OST.FLAC</title>
      <pubDate>Fri, 18 Sep 2026 12:00:00 +0000</pubDate>
      <torznab:attr name="category" value="3010"/>
    </item>
  </channel>
</rss>`

func TestTorznabSearchConvertsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("t") != "search" || q.Get("q") != "Halo" || q.Get("apikey") != "secret" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(torznabFeed))
	}))
	defer srv.Close()

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	client, err := indexer.NewTorznab(srv.URL, "secret", indexer.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewTorznab: %v", err)
	}
	hits, err := client.Search(context.Background(), "Halo")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	first := hits[0]
	if first.FileName != "Halo.Infinite-RUNE" || first.Indexer != "1337x" {
		t.Fatalf("unexpected first hit: %+v", first)
	}
	if len(first.Categories) != 1 || first.Categories[0].Name != "PC/Games" {
		t.Fatalf("unexpected categories: %+v", first.Categories)
	}
	if seeders, ok := first.Seeders.Int(); !ok || seeders != 42 {
		t.Fatalf("unexpected seeders: %v", first.Seeders)
	}
	if age, ok := first.Age.Int(); !ok || age != 13 {
		t.Fatalf("expected age 13, got %d %v", age, ok)
	}

	second := hits[1]
	if second.Indexer != "AggregateSearch" {
		t.Fatalf("expected channel title fallback, got %q", second.Indexer)
	}
	if len(second.Categories) != 1 || second.Categories[0].Name != "Audio" {
		t.Fatalf("expected parent category fallback, got %+v", second.Categories)
	}
	if second.Seeders.Present() {
		t.Fatal("expected absent seeders")
	}
	if age, _ := second.Age.Int(); age != 30 {
		t.Fatalf("expected age 30, got %d", age)
	}
}

func TestTorznabErrorDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><error code="100" description="Invalid API Key"/>`))
	}))
	defer srv.Close()

	client, _ := indexer.NewTorznab(srv.URL+"/api", "bad")
	if _, err := client.Search(context.Background(), "Halo"); err == nil {
		t.Fatal("expected error for torznab error document")
	}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error for torznab error document")
	}
}
