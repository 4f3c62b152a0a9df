// Package notify implements the fire-and-forget collaborator boundary
// toward CRM/webhook/calendar systems. Deliveries are retried with bounded
// exponential backoff and, on exhaustion, logged only; they never fail or
// delay a user-facing reply.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// WebhookNotifier posts events as JSON to a single webhook endpoint.
type WebhookNotifier struct {
	url        string
	client     *http.Client
	maxRetries uint64
}

// NewWebhookNotifier creates a notifier from config.
func NewWebhookNotifier(cfg model.NotifierConfig) *WebhookNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		url:        cfg.WebhookURL,
		client:     &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
	}
}

// Notify dispatches the event in the background. The caller's context is
// deliberately not propagated: the turn must not wait on delivery.
func (n *WebhookNotifier) Notify(_ context.Context, eventType string, payload map[string]any) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(map[string]any{
		"event":   eventType,
		"payload": payload,
		"sent_at": time.Now().UTC(),
	})
	if err != nil {
		logx.Error().Err(err).Str("event", eventType).Msg("failed to marshal webhook payload")
		return
	}

	go n.deliver(eventType, body)
}

func (n *WebhookNotifier) deliver(eventType string, body []byte) {
	op := func() error {
		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode >= 300 {
			return fmt.Errorf("webhook returned status %d", res.StatusCode)
		}
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), n.maxRetries)
	if err := backoff.Retry(op, bo); err != nil {
		logx.Warn().Err(err).Str("event", eventType).Msg("webhook delivery exhausted retries")
		return
	}
	logx.Debug().Str("event", eventType).Msg("webhook delivered")
}

var _ model.Notifier = (*WebhookNotifier)(nil)

// NoopNotifier discards every event. Used when no webhook is configured.
type NoopNotifier struct{}

// Notify implements model.Notifier.
func (NoopNotifier) Notify(context.Context, string, map[string]any) {}

var _ model.Notifier = NoopNotifier{}
