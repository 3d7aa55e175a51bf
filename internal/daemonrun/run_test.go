package daemonrun_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"discoprowl/internal/daemonrun"
	"discoprowl/internal/logging"
	"discoprowl/internal/testsupport"
)

func TestRuntimeRunsCycleEndToEnd(t *testing.T) {
	var mu sync.Mutex
	var embeds []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "Halo" {
			w.Write([]byte(`[]`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"fileName":"Halo.Infinite-RUNE","indexer":"1337x","age":2,"seeders":40,"categories":[{"id":4050,"name":"PC/Games"}]},
			{"fileName":"Halo.Soundtrack","indexer":"1337x","age":2,"seeders":5,"categories":[{"id":3000,"name":"Audio"}]}
		]`))
	})
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		var msg struct {
			Embeds []struct {
				Description string `json:"description"`
			} `json:"embeds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode webhook: %v", err)
		}
		mu.Lock()
		embeds = append(embeds, msg.Embeds[0].Description)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithIndexer(srv.URL, "key"),
		testsupport.WithTerms("Halo", "Doom"),
		testsupport.WithDiscord(srv.URL+"/webhook"),
	)
	rt, err := daemonrun.NewRuntime(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	report := rt.Daemon.RunOnce(context.Background())
	if len(report.Terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(report.Terms))
	}
	if report.CycleID == "" {
		t.Fatal("expected generated cycle id")
	}
	if got := len(report.Terms[0].Selected); got != 1 {
		t.Fatalf("expected 1 selected hit for Halo, got %d", got)
	}
	total, failed := report.Deliveries()
	if total != 2 || failed != 0 {
		t.Fatalf("expected 2 successful deliveries, got %d/%d", total, failed)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(embeds) != 2 {
		t.Fatalf("expected 2 webhook posts, got %d", len(embeds))
	}
	if embeds[1] != "Search Results for **DOOM**: No results met the filter criteria." {
		t.Fatalf("unexpected no-match description %q", embeds[1])
	}
}
