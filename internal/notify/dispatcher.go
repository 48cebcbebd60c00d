package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/acqu1red/osnovabot/internal/metrics"
	"github.com/acqu1red/osnovabot/types"
)

// Dispatcher posts ledger events to the bot service. Delivery is best-effort:
// one bounded attempt, no retry. The ledger write that triggered the event has
// already committed, so failures are reported to the caller for logging only.
type Dispatcher struct {
	baseURL string
	client  *http.Client
}

func NewDispatcher(baseURL string, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Dispatcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *Dispatcher) QuestionCreated(ctx context.Context, ev types.QuestionEvent) error {
	return d.post(ctx, "/webhook_question", "question", ev)
}

func (d *Dispatcher) AnswerReady(ctx context.Context, ev types.AnswerEvent) error {
	return d.post(ctx, "/webhook_answer", "answer", ev)
}

func (d *Dispatcher) post(ctx context.Context, path, kind string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		metrics.NotificationFailures.WithLabelValues(kind).Inc()
		return fmt.Errorf("notify %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(body))
	if err != nil {
		metrics.NotificationFailures.WithLabelValues(kind).Inc()
		return fmt.Errorf("notify %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.NotificationFailures.WithLabelValues(kind).Inc()
		return fmt.Errorf("notify %s: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.NotificationFailures.WithLabelValues(kind).Inc()
		return fmt.Errorf("notify %s: unexpected status %d", path, resp.StatusCode)
	}
	metrics.NotificationsSent.WithLabelValues(kind).Inc()
	return nil
}
