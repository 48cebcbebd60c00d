package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/i18n"
	"github.com/acqu1red/osnovabot/internal/messages"
)

func (bh *Handlers) buildMainKeyboard(lang i18n.Lang) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: messages.MenuBtnPay(lang)}},
			{{Text: messages.MenuBtnAsk(lang)}},
			{{Text: messages.MenuBtnAbout(lang)}},
			{{Text: messages.MenuBtnOffer(lang)}},
		},
		ResizeKeyboard: true,
	}
}

func (bh *Handlers) sendMainMenu(ctx context.Context, b *bot.Bot, chatID int64, lang i18n.Lang, text string) {
	if text == "" {
		text = messages.StartWelcome(lang)
	}
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: bh.buildMainKeyboard(lang),
	})
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send main menu")
	}
}

// tryMenuButton handles the reply-keyboard buttons. Labels are matched across
// all languages so a stale keyboard keeps working after a language switch.
func (bh *Handlers) tryMenuButton(ctx context.Context, b *bot.Bot, msg *models.Message, text string, lang i18n.Lang) bool {
	for _, l := range i18n.All() {
		switch text {
		case messages.MenuBtnPay(l):
			bh.sendPayOptions(ctx, b, msg.Chat.ID, lang)
			return true
		case messages.MenuBtnAsk(l):
			bh.startAskFlow(ctx, b, msg.Chat.ID, msg.From.ID, lang)
			return true
		case messages.MenuBtnAbout(l):
			_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    msg.Chat.ID,
				Text:      messages.AboutText(lang),
				ParseMode: messages.ParseModeHTML,
			})
			return true
		case messages.MenuBtnOffer(l):
			bh.sendOffer(ctx, b, msg.Chat.ID, lang)
			return true
		}
	}
	return false
}

func (bh *Handlers) sendPayOptions(ctx context.Context, b *bot.Bot, chatID int64, lang i18n.Lang) {
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: messages.PayBtnStars(lang, bh.cfg.StarsPrice), CallbackData: "pay_stars"}},
			{{Text: messages.PayBtnOther(lang), CallbackData: "pay_other"}},
		},
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        messages.ChoosePayMethod(lang),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
}

func (bh *Handlers) sendOffer(ctx context.Context, b *bot.Bot, chatID int64, lang i18n.Lang) {
	if bh.cfg.OfferURL == "" {
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   messages.OfferUnavailable(lang),
		})
		return
	}
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileString{Data: bh.cfg.OfferURL},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to send offer document")
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   messages.OfferUnavailable(lang),
		})
	}
}

func (bh *Handlers) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID := update.CallbackQuery.From.ID
	lang := bh.langFor(&update.CallbackQuery.From)
	chatID := getChatIDFromCallback(update)
	if chatID == 0 {
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "")
		return
	}

	switch update.CallbackQuery.Data {
	case "pay_stars":
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "")
		bh.sendStarsInvoice(ctx, b, chatID, lang)
	case "pay_other":
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "")
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.PayOtherHint(lang),
			ParseMode: messages.ParseModeHTML,
		})
	default:
		log.Debug().Str("data", update.CallbackQuery.Data).Int64("user_id", userID).Msg("unknown callback")
		bh.answerCallback(ctx, b, update.CallbackQuery.ID, "")
	}
}

// trySetLanguage reacts to a language name tapped on the language keyboard.
func (bh *Handlers) trySetLanguage(ctx context.Context, b *bot.Bot, msg *models.Message, text string) bool {
	lang, ok := i18n.FromName(text)
	if !ok {
		return false
	}
	if err := bh.state.SetLang(msg.From.ID, string(lang)); err != nil {
		log.Warn().Err(err).Int64("user_id", msg.From.ID).Msg("failed to store language")
	}
	bh.sendMainMenu(ctx, b, msg.Chat.ID, lang, messages.LangSet(lang))
	return true
}
