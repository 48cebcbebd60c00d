package i18n

import "strings"

type Lang string

const (
	RU Lang = "ru"
	EN Lang = "en"
	DE Lang = "de"
)

// Name returns the language's self-description for the language menu.
func (l Lang) Name() string {
	switch l {
	case RU:
		return "Русский"
	case DE:
		return "Deutsch"
	default:
		return "English"
	}
}

// All lists the supported languages in menu order.
func All() []Lang {
	return []Lang{RU, EN, DE}
}

// FromLanguageCode maps a Telegram language_code to a supported language.
func FromLanguageCode(code string) Lang {
	code = strings.ToLower(strings.TrimSpace(code))
	switch {
	case strings.HasPrefix(code, "ru"):
		return RU
	case strings.HasPrefix(code, "de"):
		return DE
	case strings.HasPrefix(code, "en"):
		return EN
	default:
		return RU
	}
}

func Parse(s string) Lang {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ru":
		return RU
	case "de":
		return DE
	case "en":
		return EN
	default:
		return RU
	}
}

// FromName maps a menu button label back to the language it names.
func FromName(name string) (Lang, bool) {
	for _, l := range All() {
		if strings.EqualFold(strings.TrimSpace(name), l.Name()) {
			return l, true
		}
	}
	return RU, false
}
