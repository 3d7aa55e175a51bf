package notifications

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"discoprowl/internal/config"
	"discoprowl/internal/logging"
	"discoprowl/internal/services"
)

// Delivery records the outcome of one transport send.
type Delivery struct {
	Transport string
	Err       error
	Duration  time.Duration
}

// OK reports whether the send succeeded.
func (d Delivery) OK() bool { return d.Err == nil }

// Dispatcher sends a payload to every configured transport in order.
type Dispatcher struct {
	transports []Transport
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures transports built by NewFromConfig.
type Option func(*buildOptions)

type buildOptions struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the HTTP client shared by all transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *buildOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// NewDispatcher wraps explicit transports. A non-positive timeout disables
// the per-transport deadline.
func NewDispatcher(transports []Transport, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		transports: append([]Transport(nil), transports...),
		timeout:    timeout,
		logger:     logging.NewComponentLogger(logger, "notify"),
	}
}

// NewFromConfig builds the enabled transports in config.Transports order.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) *Dispatcher {
	o := buildOptions{httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}
	client := o.httpClient

	var transports []Transport
	for _, name := range cfg.Transports() {
		switch name {
		case config.TransportDiscord:
			transports = append(transports, newDiscord(cfg.Discord.WebhookURL, cfg.Discord.Username, client))
		case config.TransportApprise:
			transports = append(transports, newApprise(config.TransportApprise, cfg.Apprise.URL, cfg.Apprise.Targets, client))
		case config.TransportPushover:
			if cfg.Pushover.Method == config.PushoverMethodApprise {
				transports = append(transports, newApprise(config.TransportPushover, cfg.Apprise.URL, cfg.PushoverRelayTarget(), client))
			} else {
				transports = append(transports, newPushover(cfg.Pushover.APIURL, cfg.Pushover.AppToken, cfg.Pushover.UserKey, client))
			}
		case config.TransportNtfy:
			transports = append(transports, newNtfy(cfg.Ntfy.Topic, cfg.Ntfy.Priority, client))
		}
	}
	return NewDispatcher(transports, cfg.NotifyTimeout(), logger)
}

// Transports returns the transport names in delivery order.
func (d *Dispatcher) Transports() []string {
	names := make([]string, 0, len(d.transports))
	for _, t := range d.transports {
		names = append(names, t.Name())
	}
	return names
}

// Dispatch sends payload through every transport. Failures are logged and
// recorded; they never stop later transports.
func (d *Dispatcher) Dispatch(ctx context.Context, payload Payload) []Delivery {
	deliveries := make([]Delivery, 0, len(d.transports))
	for _, transport := range d.transports {
		deliveries = append(deliveries, d.send(ctx, transport, payload))
	}
	return deliveries
}

// Test sends a fixed payload through every transport.
func (d *Dispatcher) Test(ctx context.Context) []Delivery {
	return d.Dispatch(ctx, Payload{
		Query:         "test",
		Title:         "DiscoProwl - Test",
		MarkdownTitle: "DiscoProwl - **Test**",
		Description:   "🧪 Notification system test",
		Color:         ColorMatch,
	})
}

func (d *Dispatcher) send(ctx context.Context, transport Transport, payload Payload) Delivery {
	name := transport.Name()
	ctx = services.WithTransport(ctx, name)
	logger := logging.WithContext(ctx, d.logger)

	sendCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := transport.Send(sendCtx, payload)
	delivery := Delivery{Transport: name, Err: err, Duration: time.Since(start)}
	if err != nil {
		logging.WarnWithContext(logger, "notification failed", "notify_failed",
			logging.Error(err),
			logging.String("error_class", services.EventType(err)),
			logging.String(logging.FieldErrorHint, "check the "+name+" endpoint and credentials"),
			logging.String(logging.FieldImpact, "this channel missed the notification"),
		)
		return delivery
	}
	logger.Info("notification sent", logging.Duration("duration", delivery.Duration))
	return delivery
}
