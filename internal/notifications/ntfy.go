package notifications

import (
	"context"
	"net/http"
	"strings"

	"discoprowl/internal/config"
	"discoprowl/internal/services"
)

// Ntfy publishes to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	priority string
	client   *http.Client
}

func newNtfy(endpoint, priority string, client *http.Client) *Ntfy {
	return &Ntfy{endpoint: endpoint, priority: priority, client: client}
}

func (n *Ntfy) Name() string { return config.TransportNtfy }

func (n *Ntfy) Send(ctx context.Context, payload Payload) error {
	tags := []string{"discoprowl", "search"}
	if payload.Matched {
		tags = append(tags, "video_game")
	}
	headers := map[string]string{
		"Title":    payload.Title,
		"Tags":     strings.Join(tags, ","),
		"Markdown": "yes",
	}
	if n.priority != "" && n.priority != "default" {
		headers["Priority"] = n.priority
	}
	if img := payload.Image; img.URL != "" && !img.IsLocal() {
		headers["Attach"] = img.URL
	}

	body := strings.NewReader(payload.Description)
	if err := post(ctx, n.client, n.endpoint, "text/plain; charset=utf-8", body, headers); err != nil {
		return services.Wrap(services.ErrTransient, "ntfy", "send", "", err)
	}
	return nil
}
