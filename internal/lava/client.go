package lava

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const invoicePath = "/api/v2/invoice/create"

// GatewayError is a non-200 reply from the payment gateway. Body carries the
// gateway's own error text verbatim so it can be relayed to the caller.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("lava: gateway returned %d: %s", e.Status, e.Body)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the lava invoice API. It keeps no local state: a failure leaves
// nothing behind, and the caller decides whether to try again with a fresh
// order id.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.lava.top"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type InvoiceRequest struct {
	Amount   int64
	OrderID  string
	Email    string
	Username string
	Tariff   string
	Method   string
}

// CreateInvoice asks the gateway for a new invoice. A 200 reply is returned
// verbatim; anything else becomes a *GatewayError. OrderID must be unique per
// attempt; the gateway deduplicates on it.
func (c *Client) CreateInvoice(ctx context.Context, r InvoiceRequest) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"amount":  r.Amount,
		"orderId": r.OrderID,
		"comment": "CATALYST CLUB " + r.Tariff,
		"email":   r.Email,
		"customFields": map[string]string{
			"username": r.Username,
			"tariff":   r.Tariff,
			"method":   r.Method,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("lava: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invoicePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("lava: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lava: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lava: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &GatewayError{Status: resp.StatusCode, Body: string(data)}
	}
	return json.RawMessage(data), nil
}
