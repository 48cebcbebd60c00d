package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests handled by the ledger service.",
	}, []string{"method", "path", "status"})

	RecordsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_records_appended_total",
		Help: "Records appended per collection.",
	}, []string{"collection"})

	QuestionsAnswered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_questions_answered_total",
		Help: "Questions transitioned to the answered state.",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_notifications_sent_total",
		Help: "Webhook notifications delivered to the bot service.",
	}, []string{"kind"})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_notification_failures_total",
		Help: "Webhook notifications that failed to deliver.",
	}, []string{"kind"})
)
