package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBotName is the username messages are posted as
const DefaultBotName = "MediaBot"

// ErrNoWebhook indicates the notifier has no incoming webhook configured
var ErrNoWebhook = errors.New("no incoming webhook configured")

// WebhookError represents a non-2xx answer from the incoming webhook
type WebhookError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *WebhookError) Error() string {
	return fmt.Sprintf("slack webhook error: status %d: %s", e.StatusCode, e.Body)
}

// message is the webhook body. Only these three fields are sent.
type message struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	Username string `json:"username"`
}

// Poster posts text to a channel
type Poster interface {
	Post(ctx context.Context, channel, text string) error
}

// Notifier posts messages to a Slack incoming webhook
type Notifier struct {
	webhookURL string
	username   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewNotifier creates a notifier posting as username. An empty username
// falls back to DefaultBotName.
func NewNotifier(webhookURL, username string, logger zerolog.Logger) *Notifier {
	if username == "" {
		username = DefaultBotName
	}

	return &Notifier{
		webhookURL: webhookURL,
		username:   username,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Post sends text to channel. The message is JSON encoded and submitted as
// the form-encoded payload parameter.
func (n *Notifier) Post(ctx context.Context, channel, text string) error {
	if n.webhookURL == "" {
		return ErrNoWebhook
	}

	payload, err := json.Marshal(message{
		Channel:  channel,
		Text:     text,
		Username: n.username,
	})
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	form := url.Values{"payload": {string(payload)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &WebhookError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	n.logger.Debug().
		Str("channel", channel).
		Int("length", len(text)).
		Msg("Posted message to Slack")

	return nil
}
