package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/lava"
	"github.com/acqu1red/osnovabot/internal/metrics"
	"github.com/acqu1red/osnovabot/store"
	"github.com/acqu1red/osnovabot/types"
)

var statusOK = map[string]string{"status": "ok"}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// storeStatus maps a store failure to a response code. Anything coming out of
// the record store is a medium failure and therefore a server error.
func storeError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("store operation failed")
	writeError(w, http.StatusInternalServerError, "storage failure")
}

func (h *Handler) ListSubscriptions(w http.ResponseWriter, _ *http.Request) {
	subs, err := store.List[types.Subscription](h.store, store.Subscriptions)
	if err != nil {
		storeError(w, err)
		return
	}
	if subs == nil {
		subs = []types.Subscription{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) AddSubscription(w http.ResponseWriter, r *http.Request) {
	var sub types.Subscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid subscription payload")
		return
	}
	if sub.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if strings.TrimSpace(sub.PaymentID) == "" {
		writeError(w, http.StatusBadRequest, "payment_id is required")
		return
	}
	if err := store.Append(h.store, store.Subscriptions, sub); err != nil {
		storeError(w, err)
		return
	}
	metrics.RecordsAppended.WithLabelValues(string(store.Subscriptions)).Inc()
	writeJSON(w, http.StatusOK, statusOK)
}

func (h *Handler) ListPayments(w http.ResponseWriter, _ *http.Request) {
	payments, err := store.List[types.Payment](h.store, store.Payments)
	if err != nil {
		storeError(w, err)
		return
	}
	if payments == nil {
		payments = []types.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var p types.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment payload")
		return
	}
	if p.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if strings.TrimSpace(p.PaymentID) == "" {
		writeError(w, http.StatusBadRequest, "payment_id is required")
		return
	}
	switch p.Status {
	case types.PaymentPending, types.PaymentPaid, types.PaymentFailed:
	default:
		writeError(w, http.StatusBadRequest, "status must be pending, paid or failed")
		return
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := store.Append(h.store, store.Payments, p); err != nil {
		storeError(w, err)
		return
	}
	metrics.RecordsAppended.WithLabelValues(string(store.Payments)).Inc()
	writeJSON(w, http.StatusOK, statusOK)
}

// isTruthy accepts the usual spellings of a boolean query flag.
func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// ListQuestions is fail-closed: without the admin flag and without a user_id
// the reply is an empty list, never another user's records.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	if isTruthy(r.URL.Query().Get("admin")) {
		all, err := h.questions.ListAll()
		if err != nil {
			storeError(w, err)
			return
		}
		if all == nil {
			all = []types.Question{}
		}
		writeJSON(w, http.StatusOK, all)
		return
	}

	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if userID <= 0 {
		writeJSON(w, http.StatusOK, []types.Question{})
		return
	}
	qs, err := h.questions.ListForUser(userID)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qs)
}

func (h *Handler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	var q types.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid question payload")
		return
	}
	if q.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if strings.TrimSpace(q.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if _, err := h.questions.Submit(q); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK)
}

func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	answer := strings.TrimSpace(r.URL.Query().Get("answer"))
	if answer == "" {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	count, err := h.questions.Answer(userID, answer)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "answered": count})
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		storeError(w, err)
		return
	}
	name := uuid.New().String() + "_" + filepath.Base(header.Filename)
	dst, err := os.Create(filepath.Join(h.uploadsDir, name))
	if err != nil {
		storeError(w, err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"file_url": "/uploads/" + name})
}

type invoiceParams struct {
	Amount   int64  `json:"amount"`
	OrderID  string `json:"order_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Tariff   string `json:"tariff"`
	Method   string `json:"method"`
}

func invoiceParamsFromRequest(r *http.Request) invoiceParams {
	var p invoiceParams
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&p); err == nil && (p.Amount != 0 || p.OrderID != "") {
			return p
		}
	}
	q := r.URL.Query()
	p.Amount, _ = strconv.ParseInt(q.Get("amount"), 10, 64)
	p.OrderID = q.Get("order_id")
	p.Email = q.Get("email")
	p.Username = q.Get("username")
	p.Tariff = q.Get("tariff")
	p.Method = q.Get("method")
	return p
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	p := invoiceParamsFromRequest(r)
	if p.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if strings.TrimSpace(p.OrderID) == "" {
		writeError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	raw, err := h.lava.CreateInvoice(r.Context(), lava.InvoiceRequest{
		Amount:   p.Amount,
		OrderID:  p.OrderID,
		Email:    p.Email,
		Username: p.Username,
		Tariff:   p.Tariff,
		Method:   p.Method,
	})
	if err != nil {
		var gwErr *lava.GatewayError
		if errors.As(err, &gwErr) {
			log.Warn().Int("status", gwErr.Status).Str("order_id", p.OrderID).Msg("gateway rejected invoice")
			writeError(w, http.StatusBadRequest, gwErr.Body)
			return
		}
		log.Error().Err(err).Str("order_id", p.OrderID).Msg("gateway unreachable")
		writeError(w, http.StatusBadGateway, "payment gateway unreachable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
