package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookNotifier POSTs the payload as JSON to an HTTP endpoint which is
// expected to send the business and customer e-mails itself.
type WebhookNotifier struct {
	url    string
	key    string
	client *http.Client
}

// NewWebhookNotifier returns a notifier posting to url. key, when set, is
// sent as a bearer token.
func NewWebhookNotifier(url, key string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		key:    key,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (n *WebhookNotifier) NotifyNewQuote(ctx context.Context, p QuotePayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.key != "" {
		req.Header.Set("Authorization", "Bearer "+n.key)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
