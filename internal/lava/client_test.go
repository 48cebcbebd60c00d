package lava

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestCreateInvoiceSuccess(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != invoicePath {
			t.Errorf("path = %q, want %q", r.URL.Path, invoicePath)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"id":"inv-1","url":"https://pay.example/inv-1"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "secret", BaseURL: srv.URL})
	raw, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		Amount:   1500,
		OrderID:  "order-1",
		Email:    "a@b.c",
		Username: "alice",
		Tariff:   "monthly",
		Method:   "card",
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPayload["orderId"] != "order-1" {
		t.Errorf("orderId = %v", gotPayload["orderId"])
	}
	if gotPayload["comment"] != "CATALYST CLUB monthly" {
		t.Errorf("comment = %v", gotPayload["comment"])
	}
	custom, _ := gotPayload["customFields"].(map[string]interface{})
	if custom["username"] != "alice" || custom["method"] != "card" {
		t.Errorf("customFields = %v", custom)
	}

	var invoice map[string]string
	if err := json.Unmarshal(raw, &invoice); err != nil {
		t.Fatalf("response not passed through verbatim: %v", err)
	}
	if invoice["id"] != "inv-1" {
		t.Errorf("invoice id = %q", invoice["id"])
	}
}

func TestCreateInvoiceGatewayError(t *testing.T) {
	const gatewayBody = `{"error":"insufficient"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(gatewayBody))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "secret", BaseURL: srv.URL})
	_, err := c.CreateInvoice(context.Background(), InvoiceRequest{Amount: 1, OrderID: "o"})
	if err == nil {
		t.Fatal("expected gateway error")
	}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("error type = %T, want *GatewayError", err)
	}
	if gwErr.Status != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", gwErr.Status)
	}
	if gwErr.Body != gatewayBody {
		t.Errorf("body = %q, want %q", gwErr.Body, gatewayBody)
	}
}

func TestCreateInvoiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(Config{APIKey: "secret", BaseURL: srv.URL})
	_, err := c.CreateInvoice(context.Background(), InvoiceRequest{Amount: 1, OrderID: "o"})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		t.Fatal("transport failure should not be a GatewayError")
	}
}
