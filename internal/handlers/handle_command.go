package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/acqu1red/osnovabot/internal/i18n"
	"github.com/acqu1red/osnovabot/internal/messages"
)

func (bh *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, msg *models.Message) {
	lang := bh.langFor(msg.From)
	fields := strings.Fields(strings.TrimSpace(msg.Text))
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}

	switch cmd {
	case "/start", "/menu":
		bh.sendMainMenu(ctx, b, msg.Chat.ID, lang, "")
	case "/language":
		bh.sendLanguageMenu(ctx, b, msg.Chat.ID, lang)
	default:
		bh.sendMainMenu(ctx, b, msg.Chat.ID, lang, "")
	}
}

func (bh *Handlers) sendLanguageMenu(ctx context.Context, b *bot.Bot, chatID int64, lang i18n.Lang) {
	rows := make([][]models.KeyboardButton, 0, len(i18n.All()))
	for _, l := range i18n.All() {
		rows = append(rows, []models.KeyboardButton{{Text: l.Name()}})
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      messages.ChooseLang(lang),
		ParseMode: messages.ParseModeHTML,
		ReplyMarkup: &models.ReplyKeyboardMarkup{
			Keyboard:       rows,
			ResizeKeyboard: true,
		},
	})
}
