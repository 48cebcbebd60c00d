package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/i18n"
	"github.com/acqu1red/osnovabot/internal/messages"
	"github.com/acqu1red/osnovabot/types"
)

// MessageSender is the slice of the bot API the webhook server needs.
// *bot.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// LangStore resolves a user's stored language preference.
type LangStore interface {
	GetLang(userID int64) (string, error)
}

// WebhookServer receives ledger notifications and renders them to Telegram.
// Once a payload decodes, the reply is {"status":"ok"} no matter what happens
// during rendering: the ledger fires and forgets, it must never see our
// delivery problems.
type WebhookServer struct {
	sender    MessageSender
	state     LangStore
	channelID int64
}

func NewWebhookServer(sender MessageSender, state LangStore, channelID int64) *WebhookServer {
	return &WebhookServer{
		sender:    sender,
		state:     state,
		channelID: channelID,
	}
}

func (ws *WebhookServer) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/webhook_question", ws.HandleQuestion)
	r.Post("/webhook_answer", ws.HandleAnswer)
	return r
}

func webhookOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func webhookBadPayload(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid payload"})
}

// HandleQuestion relays a new question to the operators channel.
func (ws *WebhookServer) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	var ev types.QuestionEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		webhookBadPayload(w)
		return
	}

	fileURL := ""
	if ev.FileURL != nil {
		fileURL = *ev.FileURL
	}
	_, err := ws.sender.SendMessage(r.Context(), &bot.SendMessageParams{
		ChatID:    ws.channelID,
		Text:      messages.ChannelQuestion(ev.Username, ev.UserID, ev.Message, fileURL),
		ParseMode: messages.ParseModeHTML,
	})
	if err != nil {
		log.Warn().Err(err).Int64("user_id", ev.UserID).Msg("failed to relay question to channel")
	}
	webhookOK(w)
}

// HandleAnswer delivers an operator's answer to the asking user.
func (ws *WebhookServer) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var ev types.AnswerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		webhookBadPayload(w)
		return
	}

	lang := i18n.RU
	if ws.state != nil {
		if s, err := ws.state.GetLang(ev.UserID); err == nil && s != "" {
			lang = i18n.Parse(s)
		}
	}
	_, err := ws.sender.SendMessage(r.Context(), &bot.SendMessageParams{
		ChatID:    ev.UserID,
		Text:      messages.UserAnswer(lang, ev.Answer),
		ParseMode: messages.ParseModeHTML,
	})
	if err != nil {
		log.Warn().Err(err).Int64("user_id", ev.UserID).Msg("failed to deliver answer to user")
	}
	webhookOK(w)
}
