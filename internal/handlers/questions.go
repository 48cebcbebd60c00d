package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/i18n"
	"github.com/acqu1red/osnovabot/internal/messages"
	"github.com/acqu1red/osnovabot/types"
)

func (bh *Handlers) startAskFlow(ctx context.Context, b *bot.Bot, chatID, userID int64, lang i18n.Lang) {
	if err := bh.state.SetAwaitingQuestion(userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to arm question flow")
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(lang),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      messages.AskPrompt(lang),
		ParseMode: messages.ParseModeHTML,
	})
}

// submitPendingQuestion sends the armed user's next message to the ledger.
// On failure the flag stays set so the user can simply send again.
func (bh *Handlers) submitPendingQuestion(ctx context.Context, b *bot.Bot, msg *models.Message, lang i18n.Lang) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    msg.Chat.ID,
			Text:      messages.AskPrompt(lang),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}

	userID := msg.From.ID
	err := bh.ledger.SubmitQuestion(ctx, types.Question{
		UserID:   userID,
		Username: strings.TrimSpace(msg.From.Username),
		Message:  text,
	})
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to submit question")
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    msg.Chat.ID,
			Text:      messages.QuestionFailed(lang),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}

	_ = bh.state.ClearAwaitingQuestion(userID)
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      messages.QuestionSent(lang),
		ParseMode: messages.ParseModeHTML,
	})
}
