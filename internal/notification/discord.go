package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hydrosim/hydrosim-cli/internal/properties"
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

var client = &http.Client{Timeout: 10 * time.Second}

func SendDiscordErrorNotification(ctx context.Context, errorMessage string) error {
	return send(ctx, properties.DiscordErrorNotificationUrl(), DiscordEmbed{
		Title:       "🚨 Forecast failed",
		Description: fmt.Sprintf("An error occurred: %s", errorMessage),
		Color:       16711680, // Red color
	})
}

func SendDiscordSuccessNotification(ctx context.Context, successMessage string) error {
	return send(ctx, properties.DiscordSuccessNotificationUrl(), DiscordEmbed{
		Title:       "✅ Forecast finished",
		Description: successMessage,
		Color:       65280, // Green color
	})
}

// send posts the embed to url. An empty url disables the notification.
func send(ctx context.Context, url string, embed DiscordEmbed) error {
	if url == "" {
		return nil
	}

	payload, err := json.Marshal(DiscordMessage{Embeds: []DiscordEmbed{embed}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}
