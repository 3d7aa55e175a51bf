package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"discoprowl/internal/services"
)

type appriseRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	URLs   string `json:"urls,omitempty"`
	Attach string `json:"attach,omitempty"`
}

// Apprise posts to an Apprise API endpoint. With targets set the request is
// stateless and the relay forwards to those URLs; otherwise the endpoint's
// stored configuration decides.
type Apprise struct {
	name     string
	endpoint string
	targets  string
	client   *http.Client
}

func newApprise(name, endpoint, targets string, client *http.Client) *Apprise {
	return &Apprise{name: name, endpoint: endpoint, targets: targets, client: client}
}

func (a *Apprise) Name() string { return a.name }

func (a *Apprise) Send(ctx context.Context, payload Payload) error {
	req := appriseRequest{Title: payload.Title, Body: payload.Description, URLs: a.targets}
	if img := payload.Image; img.URL != "" && !img.IsLocal() {
		req.Attach = img.URL
	}
	data, err := json.Marshal(req)
	if err != nil {
		return services.Wrap(services.ErrValidation, a.name, "encode", "", err)
	}
	if err := post(ctx, a.client, a.endpoint, "application/json", bytes.NewReader(data), nil); err != nil {
		return services.Wrap(services.ErrTransient, a.name, "send", "", err)
	}
	return nil
}
