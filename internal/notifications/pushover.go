package notifications

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"discoprowl/internal/config"
	"discoprowl/internal/services"
)

// Pushover posts directly to the Pushover messages API.
type Pushover struct {
	apiURL   string
	appToken string
	userKey  string
	client   *http.Client
}

func newPushover(apiURL, appToken, userKey string, client *http.Client) *Pushover {
	return &Pushover{apiURL: apiURL, appToken: appToken, userKey: userKey, client: client}
}

func (p *Pushover) Name() string { return config.TransportPushover }

// Send uses a urlencoded form, or multipart when a local image can be
// attached. Pushover accepts a single attachment, so only the main image is sent.
func (p *Pushover) Send(ctx context.Context, payload Payload) error {
	fields := map[string]string{
		"token":   p.appToken,
		"user":    p.userKey,
		"title":   payload.Title,
		"message": payload.Description,
	}

	if !payload.Image.IsLocal() {
		form := url.Values{}
		for key, value := range fields {
			form.Set(key, value)
		}
		if err := post(ctx, p.client, p.apiURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), nil); err != nil {
			return services.Wrap(services.ErrTransient, "pushover", "send", "", err)
		}
		return nil
	}

	mb := newMultipartBody()
	for _, key := range []string{"token", "user", "title", "message"} {
		if err := mb.field(key, fields[key]); err != nil {
			return services.Wrap(services.ErrTransient, "pushover", "encode", "", err)
		}
	}
	if err := mb.file("attachment", payload.Image.LocalPath); err != nil {
		return services.Wrap(services.ErrConfiguration, "pushover", "attach", "", err)
	}
	body, contentType, err := mb.finish()
	if err != nil {
		return services.Wrap(services.ErrTransient, "pushover", "encode", "", err)
	}
	if err := post(ctx, p.client, p.apiURL, contentType, body, nil); err != nil {
		return services.Wrap(services.ErrTransient, "pushover", "send", "", err)
	}
	return nil
}
