package ledgerclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/acqu1red/osnovabot/types"
)

// Client is the bot's view of the ledger service. The ledger owns all record
// state; the bot only appends through it and never caches.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) SubmitQuestion(ctx context.Context, q types.Question) error {
	return c.post(ctx, "/questions", q)
}

func (c *Client) RecordPayment(ctx context.Context, p types.Payment) error {
	return c.post(ctx, "/payments", p)
}

func (c *Client) RecordSubscription(ctx context.Context, s types.Subscription) error {
	return c.post(ctx, "/subscriptions", s)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ledger %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ledger %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ledger %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ledger %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
