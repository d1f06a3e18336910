package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Notifier delivers the per-command summary to an external channel.
type Notifier interface {
	Notify(summary string) error
}

// webhookNotifier posts summaries as JSON to a webhook URL.
type webhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a Notifier posting to the given webhook URL.
func NewWebhookNotifier(webhookURL string) Notifier {
	return &webhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type webhookMessage struct {
	Text string `json:"text"`
}

// Notify posts the summary. An empty summary sends nothing.
func (n *webhookNotifier) Notify(summary string) error {
	if summary == "" {
		return nil
	}

	body, err := json.Marshal(webhookMessage{Text: summary})
	if err != nil {
		return fmt.Errorf("marshaling webhook message: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// nopNotifier is used when no webhook is configured.
type nopNotifier struct{}

// NewNopNotifier returns a Notifier that discards summaries.
func NewNopNotifier() Notifier { return nopNotifier{} }

func (nopNotifier) Notify(string) error { return nil }
