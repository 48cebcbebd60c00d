package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/i18n"
	"github.com/acqu1red/osnovabot/internal/messages"
	"github.com/acqu1red/osnovabot/types"
)

const subPayload = "osnova_channel_sub"

func (bh *Handlers) sendStarsInvoice(ctx context.Context, b *bot.Bot, chatID int64, lang i18n.Lang) {
	_, err := b.SendInvoice(ctx, &bot.SendInvoiceParams{
		ChatID:      chatID,
		Title:       messages.InvoiceTitle(lang),
		Description: messages.InvoiceDescription(lang, bh.cfg.SubscriptionDays),
		Payload:     subPayload,
		Currency:    "XTR",
		Prices: []models.LabeledPrice{
			{Label: messages.InvoiceTitle(lang), Amount: bh.cfg.StarsPrice},
		},
		StartParameter: "osnova_sub",
		ProviderToken:  "",
	})
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send stars invoice")
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(lang),
			ParseMode: messages.ParseModeHTML,
		})
	}
}

func (bh *Handlers) HandlePreCheckout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.PreCheckoutQuery == nil {
		return
	}
	lang := bh.langFor(update.PreCheckoutQuery.From)
	ok := strings.TrimSpace(update.PreCheckoutQuery.InvoicePayload) == subPayload
	errText := ""
	if !ok {
		errText = messages.PaymentInvalid(lang)
	}
	_, _ = b.AnswerPreCheckoutQuery(ctx, &bot.AnswerPreCheckoutQueryParams{
		PreCheckoutQueryID: update.PreCheckoutQuery.ID,
		OK:                 ok,
		ErrorMessage:       errText,
	})
}

// HandleSuccessfulPayment records the confirmed Stars payment and the
// resulting subscription in the ledger, then confirms to the user.
func (bh *Handlers) HandleSuccessfulPayment(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if msg.SuccessfulPayment == nil || msg.From == nil {
		return
	}
	p := msg.SuccessfulPayment
	if strings.TrimSpace(p.InvoicePayload) != subPayload {
		return
	}

	userID := msg.From.ID
	lang := bh.langFor(msg.From)
	now := time.Now().UTC()
	paymentID := strings.TrimSpace(p.TelegramPaymentChargeID)

	err := bh.ledger.RecordPayment(ctx, types.Payment{
		UserID:    userID,
		Username:  strings.TrimSpace(msg.From.Username),
		Tariff:    bh.cfg.Tariff,
		Amount:    int64(p.TotalAmount),
		Method:    "stars",
		PaymentID: paymentID,
		Status:    types.PaymentPaid,
		CreatedAt: now.Format(time.RFC3339),
	})
	if err == nil {
		end := now.AddDate(0, 0, bh.cfg.SubscriptionDays)
		err = bh.ledger.RecordSubscription(ctx, types.Subscription{
			UserID:    userID,
			Username:  strings.TrimSpace(msg.From.Username),
			Tariff:    bh.cfg.Tariff,
			StartDate: now.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
			PaymentID: paymentID,
		})
		if err == nil {
			_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    msg.Chat.ID,
				Text:      messages.PaymentSucceeded(lang, end.Format("2006-01-02")),
				ParseMode: messages.ParseModeHTML,
			})
			return
		}
	}

	log.Error().Err(err).Int64("user_id", userID).Str("payment_id", paymentID).Msg("failed to record stars payment")
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      messages.PaymentRecordFailed(lang),
		ParseMode: messages.ParseModeHTML,
	})
}
