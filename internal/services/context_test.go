package services_test

import (
	"context"
	"testing"

	"discoprowl/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithCycleID(ctx, "cycle-1")
	ctx = services.WithQuery(ctx, "Halo")
	ctx = services.WithTransport(ctx, "discord")

	if id, ok := services.CycleIDFromContext(ctx); !ok || id != "cycle-1" {
		t.Fatalf("unexpected cycle id: %v %v", id, ok)
	}
	if query, ok := services.QueryFromContext(ctx); !ok || query != "Halo" {
		t.Fatalf("unexpected query: %v %v", query, ok)
	}
	if name, ok := services.TransportFromContext(ctx); !ok || name != "discord" {
		t.Fatalf("unexpected transport: %v %v", name, ok)
	}
}

func TestQueryBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithQuery(ctx, "")
	if _, ok := services.QueryFromContext(ctx); ok {
		t.Fatal("expected no query value")
	}
}
