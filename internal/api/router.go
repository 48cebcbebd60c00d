package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acqu1red/osnovabot/internal/lava"
	"github.com/acqu1red/osnovabot/internal/questions"
	"github.com/acqu1red/osnovabot/store"
)

// Handler serves the ledger HTTP surface.
type Handler struct {
	store      *store.Store
	questions  *questions.Service
	lava       *lava.Client
	uploadsDir string
}

func NewHandler(s *store.Store, q *questions.Service, l *lava.Client, uploadsDir string) *Handler {
	return &Handler{
		store:      s,
		questions:  q,
		lava:       l,
		uploadsDir: uploadsDir,
	}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, statusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/subscriptions", h.ListSubscriptions)
	r.Post("/subscriptions", h.AddSubscription)

	r.Get("/payments", h.ListPayments)
	r.Post("/payments", h.AddPayment)

	r.Get("/questions", h.ListQuestions)
	r.Post("/questions", h.SubmitQuestion)
	r.Post("/questions/answer", h.AnswerQuestion)
	r.Post("/questions/upload", h.UploadFile)

	r.Post("/lava/create_invoice", h.CreateInvoice)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadsDir))))

	return r
}
