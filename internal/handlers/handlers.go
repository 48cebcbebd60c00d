package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/acqu1red/osnovabot/internal/config"
	"github.com/acqu1red/osnovabot/internal/i18n"
	"github.com/acqu1red/osnovabot/internal/ledgerclient"
)

// UserState is the per-user bot state the handlers need. *store.RedisUserStore
// satisfies it.
type UserState interface {
	GetLang(userID int64) (string, error)
	SetLang(userID int64, lang string) error
	IsAwaitingQuestion(userID int64) bool
	SetAwaitingQuestion(userID int64) error
	ClearAwaitingQuestion(userID int64) error
}

type Handlers struct {
	cfg    config.BotConfig
	state  UserState
	ledger *ledgerclient.Client
}

func NewHandlers(cfg config.BotConfig, state UserState, ledger *ledgerclient.Client) *Handlers {
	return &Handlers{
		cfg:    cfg,
		state:  state,
		ledger: ledger,
	}
}

// MainHandler is the single entry point for all updates; it dispatches by
// update content the way the bot API delivers it.
func (bh *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.PreCheckoutQuery != nil:
		bh.HandlePreCheckout(ctx, b, update)
	case update.CallbackQuery != nil:
		bh.HandleCallback(ctx, b, update)
	case update.Message != nil && update.Message.From != nil:
		bh.handleMessage(ctx, b, update.Message)
	}
}

func (bh *Handlers) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if msg.SuccessfulPayment != nil {
		bh.HandleSuccessfulPayment(ctx, b, msg)
		return
	}

	userID := msg.From.ID
	lang := bh.langFor(msg.From)
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/"):
		bh.HandleCommand(ctx, b, msg)
	case bh.trySetLanguage(ctx, b, msg, text):
	case bh.tryMenuButton(ctx, b, msg, text, lang):
	case bh.state.IsAwaitingQuestion(userID):
		bh.submitPendingQuestion(ctx, b, msg, lang)
	default:
		bh.sendMainMenu(ctx, b, msg.Chat.ID, lang, "")
	}
}

func (bh *Handlers) langFor(user *models.User) i18n.Lang {
	if user == nil {
		return i18n.RU
	}
	if s, err := bh.state.GetLang(user.ID); err == nil && s != "" {
		return i18n.Parse(s)
	}
	return i18n.FromLanguageCode(user.LanguageCode)
}

func (bh *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

func getChatIDFromCallback(update *models.Update) int64 {
	m := update.CallbackQuery.Message
	if m.Message != nil {
		return m.Message.Chat.ID
	}
	if m.InaccessibleMessage != nil {
		return m.InaccessibleMessage.Chat.ID
	}
	return 0
}
