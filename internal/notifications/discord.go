package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"discoprowl/internal/config"
	"discoprowl/internal/services"
)

type discordImage struct {
	URL string `json:"url"`
}

type discordEmbed struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Color       int           `json:"color"`
	Image       *discordImage `json:"image,omitempty"`
	Thumbnail   *discordImage `json:"thumbnail,omitempty"`
}

type discordMessage struct {
	Username string         `json:"username"`
	Content  string         `json:"content"`
	Embeds   []discordEmbed `json:"embeds"`
}

// Discord posts an embed to a webhook.
type Discord struct {
	webhookURL string
	username   string
	client     *http.Client
}

func newDiscord(webhookURL, username string, client *http.Client) *Discord {
	return &Discord{webhookURL: webhookURL, username: username, client: client}
}

func (d *Discord) Name() string { return config.TransportDiscord }

// Send posts JSON, or multipart/form-data with payload_json and files[n]
// when an image must be uploaded.
func (d *Discord) Send(ctx context.Context, payload Payload) error {
	data, err := json.Marshal(d.message(payload))
	if err != nil {
		return services.Wrap(services.ErrValidation, "discord", "encode", "", err)
	}

	locals := payload.LocalImages()
	if len(locals) == 0 {
		if err := post(ctx, d.client, d.webhookURL, "application/json", bytes.NewReader(data), nil); err != nil {
			return services.Wrap(services.ErrTransient, "discord", "send", "", err)
		}
		return nil
	}

	mb := newMultipartBody()
	if err := mb.field("payload_json", string(data)); err != nil {
		return services.Wrap(services.ErrTransient, "discord", "encode", "", err)
	}
	for i, img := range locals {
		if err := mb.file(fmt.Sprintf("files[%d]", i), img.LocalPath); err != nil {
			return services.Wrap(services.ErrConfiguration, "discord", "attach", "", err)
		}
	}
	body, contentType, err := mb.finish()
	if err != nil {
		return services.Wrap(services.ErrTransient, "discord", "encode", "", err)
	}
	if err := post(ctx, d.client, d.webhookURL, contentType, body, nil); err != nil {
		return services.Wrap(services.ErrTransient, "discord", "send", "", err)
	}
	return nil
}

func (d *Discord) message(payload Payload) discordMessage {
	embed := discordEmbed{
		Title:       payload.MarkdownTitle,
		Description: payload.Description,
		Color:       payload.Color,
	}
	if payload.Image.URL != "" {
		embed.Image = &discordImage{URL: payload.Image.URL}
	}
	if payload.Thumbnail.URL != "" {
		embed.Thumbnail = &discordImage{URL: payload.Thumbnail.URL}
	}
	return discordMessage{Username: d.username, Content: "", Embeds: []discordEmbed{embed}}
}
