package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type Notifier interface {
	NotifyLead(ctx context.Context, id uuid.UUID, lead types.Lead) error
}

// WebhookNotifier POSTs captured leads to an outbound webhook. An empty URL
// turns it into a no-op, so the feature degrades cleanly when unconfigured.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewWebhookNotifier(url string, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (n *WebhookNotifier) NotifyLead(ctx context.Context, id uuid.UUID, lead types.Lead) error {
	if n.url == "" {
		return nil
	}

	payload, err := json.Marshal(struct {
		ID uuid.UUID `json:"id"`
		types.Lead
	}{ID: id, Lead: lead})
	if err != nil {
		return fmt.Errorf("failed to encode lead notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build lead notification: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("lead notification request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("lead notification rejected with status %d", resp.StatusCode)
	}
	return nil
}
