package messages

import (
	"fmt"
	"strings"

	"github.com/acqu1red/osnovabot/internal/i18n"
)

const ParseModeHTML = "HTML"

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

func StartWelcome(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "👋 <b>Welcome!</b>\nThis is the official bot of CATALYST CLUB. Learn more about the private channel \"OSNOVA\" and join.\n\n💳 Subscription — 1500₽ per month (~14$). Pay in rubles, crypto, any currency or Telegram Stars.\n\nPick an option below:"
	case i18n.DE:
		return "👋 <b>Willkommen!</b>\nDies ist der offizielle Bot des CATALYST CLUB. Erfahre mehr über den privaten Kanal \"OSNOVA\" und trete bei.\n\n💳 Abo — 1500₽ pro Monat (~14$).\n\nWähle unten eine Option:"
	default:
		return "👋 <b>Доброго времени суток!</b>\nЭто официальный бот канала CATALYST CLUB, который поможет узнать больше о закрытом канале «ОСНОВА» и вступить в него.\n\n💳 Подписка — 1500₽ в месяц (~14$). Оплата — в рублях, крипте, любой валюте и Telegram Stars.\n\nВыберите вариант ниже:"
	}
}

func MenuBtnPay(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "Pay for access"
	case i18n.DE:
		return "Zugang bezahlen"
	default:
		return "Оплатить доступ"
	}
}

func MenuBtnAsk(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "Ask a question"
	case i18n.DE:
		return "Frage stellen"
	default:
		return "Задать вопрос"
	}
}

func MenuBtnAbout(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "About the channel"
	case i18n.DE:
		return "Über den Kanal"
	default:
		return "Подробнее о канале"
	}
}

func MenuBtnOffer(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "Offer agreement"
	case i18n.DE:
		return "Angebotsvertrag"
	default:
		return "Договор оферты"
	}
}

func AboutText(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "The \"OSNOVA\" channel is a private community with daily analytics and closed discussions."
	case i18n.DE:
		return "Der Kanal \"OSNOVA\" ist eine private Community mit täglichen Analysen und geschlossenen Diskussionen."
	default:
		return "Канал «ОСНОВА» — закрытое сообщество с ежедневной аналитикой и закрытыми обсуждениями."
	}
}

func ChooseLang(lang i18n.Lang) string {
	_ = lang
	return "Выберите язык / Choose language / Sprache wählen:"
}

func LangSet(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return fmt.Sprintf("Language set: %s", lang.Name())
	case i18n.DE:
		return fmt.Sprintf("Sprache eingestellt: %s", lang.Name())
	default:
		return fmt.Sprintf("Язык установлен: %s", lang.Name())
	}
}

func ChoosePayMethod(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "Choose a payment method:"
	case i18n.DE:
		return "Zahlungsmethode wählen:"
	default:
		return "Выберите способ оплаты:"
	}
}

func PayBtnStars(lang i18n.Lang, stars int) string {
	switch lang {
	case i18n.EN:
		return fmt.Sprintf("💫 Pay with Stars (%d)", stars)
	case i18n.DE:
		return fmt.Sprintf("💫 Mit Stars bezahlen (%d)", stars)
	default:
		return fmt.Sprintf("💫 Оплата звёздами (%d)", stars)
	}
}

func PayBtnOther(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "💳 Pay another way"
	case i18n.DE:
		return "💳 Anders bezahlen"
	default:
		return "💳 Оплатить другим способом"
	}
}

func PayOtherHint(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "To pay another way, use the mini app (button below or in the menu)."
	case i18n.DE:
		return "Für andere Zahlungswege nutze die Mini-App (unten oder im Menü)."
	default:
		return "Для оплаты другим способом используйте mini app (кнопка ниже или в меню)."
	}
}

func InvoiceTitle(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "OSNOVA subscription"
	case i18n.DE:
		return "OSNOVA-Abo"
	default:
		return "Подписка на «ОСНОВУ»"
	}
}

func InvoiceDescription(lang i18n.Lang, days int) string {
	switch lang {
	case i18n.EN:
		return fmt.Sprintf("Access to the private channel for %d days", days)
	case i18n.DE:
		return fmt.Sprintf("Zugang zum privaten Kanal für %d Tage", days)
	default:
		return fmt.Sprintf("Доступ к закрытому каналу на %d дней", days)
	}
}

func PaymentInvalid(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "Invalid payment"
	case i18n.DE:
		return "Ungültige Zahlung"
	default:
		return "Некорректный платёж"
	}
}

func PaymentSucceeded(lang i18n.Lang, endDate string) string {
	switch lang {
	case i18n.EN:
		return fmt.Sprintf("✅ <b>Payment received!</b>\nYour subscription is active until %s.", Escape(endDate))
	case i18n.DE:
		return fmt.Sprintf("✅ <b>Zahlung erhalten!</b>\nDein Abo läuft bis %s.", Escape(endDate))
	default:
		return fmt.Sprintf("✅ <b>Оплата получена!</b>\nПодписка активна до %s.", Escape(endDate))
	}
}

func PaymentRecordFailed(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "⚠️ Payment received, but we could not record it. Support has been notified."
	case i18n.DE:
		return "⚠️ Zahlung erhalten, aber nicht verbucht. Der Support wurde informiert."
	default:
		return "⚠️ Оплата получена, но не записана. Поддержка уже уведомлена."
	}
}

func AskPrompt(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "✍️ Send your question in one message, I will pass it to the team."
	case i18n.DE:
		return "✍️ Schicke deine Frage in einer Nachricht, ich leite sie weiter."
	default:
		return "✍️ Отправьте ваш вопрос одним сообщением — я передам его команде."
	}
}

func QuestionSent(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "📨 Your question has been sent. You will get the answer right here."
	case i18n.DE:
		return "📨 Deine Frage wurde gesendet. Die Antwort kommt hierher."
	default:
		return "📨 Ваш вопрос отправлен. Ответ придёт сюда же."
	}
}

func QuestionFailed(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "🚫 Could not send the question. Please try again later."
	case i18n.DE:
		return "🚫 Frage konnte nicht gesendet werden. Versuche es später erneut."
	default:
		return "🚫 Не удалось отправить вопрос. Попробуйте позже."
	}
}

func OfferUnavailable(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "The offer agreement is temporarily unavailable."
	case i18n.DE:
		return "Der Angebotsvertrag ist vorübergehend nicht verfügbar."
	default:
		return "Оферта временно недоступна."
	}
}

func ErrorDefault(lang i18n.Lang) string {
	switch lang {
	case i18n.EN:
		return "🚫 <b>Something went wrong</b>\nPlease try again."
	case i18n.DE:
		return "🚫 <b>Etwas ist schiefgelaufen</b>\nBitte versuche es erneut."
	default:
		return "🚫 <b>Ошибка</b>\nПопробуйте ещё раз."
	}
}

// ChannelQuestion renders a new question for the operators channel.
func ChannelQuestion(username string, userID int64, message string, fileURL string) string {
	text := fmt.Sprintf("❓ <b>Новый вопрос</b>\nUsername: @%s\nUser ID: %d\nСообщение: %s",
		Escape(username), userID, Escape(message))
	if fileURL != "" {
		text += fmt.Sprintf("\n📎 <a href=\"%s\">Вложение</a>", Escape(fileURL))
	}
	return text
}

// UserAnswer renders an operator's answer for the asking user.
func UserAnswer(lang i18n.Lang, answer string) string {
	switch lang {
	case i18n.EN:
		return fmt.Sprintf("📩 <b>Answer to your question:</b>\n%s", Escape(answer))
	case i18n.DE:
		return fmt.Sprintf("📩 <b>Antwort auf deine Frage:</b>\n%s", Escape(answer))
	default:
		return fmt.Sprintf("📩 <b>Ответ на ваш вопрос:</b>\n%s", Escape(answer))
	}
}
