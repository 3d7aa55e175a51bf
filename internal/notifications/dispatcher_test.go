package notifications_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"discoprowl/internal/logging"
	"discoprowl/internal/notifications"
	"discoprowl/internal/services"
)

type fakeTransport struct {
	name  string
	err   error
	block bool
	sent  []notifications.Payload
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Send(ctx context.Context, p notifications.Payload) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if _, ok := services.TransportFromContext(ctx); !ok {
		return errors.New("transport missing from context")
	}
	f.sent = append(f.sent, p)
	return f.err
}

func TestDispatchContinuesAfterFailure(t *testing.T) {
	failing := &fakeTransport{name: "discord", err: errors.New("boom")}
	slow := &fakeTransport{name: "apprise", block: true}
	ok := &fakeTransport{name: "ntfy"}

	d := notifications.NewDispatcher([]notifications.Transport{failing, slow, ok}, 20*time.Millisecond, logging.NewNop())
	deliveries := d.Dispatch(context.Background(), notifications.Payload{Title: "t"})

	if len(deliveries) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(deliveries))
	}
	if deliveries[0].OK() || deliveries[0].Transport != "discord" {
		t.Fatalf("expected discord failure, got %+v", deliveries[0])
	}
	if !errors.Is(deliveries[1].Err, context.DeadlineExceeded) {
		t.Fatalf("expected apprise timeout, got %v", deliveries[1].Err)
	}
	if !deliveries[2].OK() || len(ok.sent) != 1 {
		t.Fatalf("expected ntfy delivery, got %+v", deliveries[2])
	}
}

func TestDispatcherTestPayload(t *testing.T) {
	ft := &fakeTransport{name: "discord"}
	d := notifications.NewDispatcher([]notifications.Transport{ft}, time.Second, logging.NewNop())
	deliveries := d.Test(context.Background())
	if len(deliveries) != 1 || !deliveries[0].OK() {
		t.Fatalf("unexpected deliveries: %+v", deliveries)
	}
	if ft.sent[0].Title != "DiscoProwl - Test" {
		t.Fatalf("unexpected test title %q", ft.sent[0].Title)
	}
}
