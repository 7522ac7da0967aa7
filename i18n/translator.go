package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min", "max" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須項目です"
		case "too_short":
			return fill("{min}文字以上で入力してください", data, "短すぎます")
		case "too_long":
			return fill("{max}文字以下で入力してください", data, "長すぎます")
		case "too_small":
			return fill("{min}以上の値を入力してください", data, "小さすぎます")
		case "too_big":
			return fill("{max}以下の値を入力してください", data, "大きすぎます")
		case "invalid_format":
			return "形式が不正です"
		case "custom":
			return "入力内容が不正です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return fill("expected {expected}", data, "invalid type")
		case "required":
			return "required"
		case "too_short":
			return fill("must contain at least {min} character(s)", data, "too short")
		case "too_long":
			return fill("must contain at most {max} character(s)", data, "too long")
		case "too_small":
			return fill("must be greater than or equal to {min}", data, "too small")
		case "too_big":
			return fill("must be less than or equal to {max}", data, "too big")
		case "invalid_format":
			return fill("invalid {format}", data, "invalid format")
		case "custom":
			return "invalid input"
		}
	}
	return code
}

// fill substitutes {key} placeholders from data; it falls back when any
// placeholder stays unresolved.
func fill(tmpl string, data map[string]string, fallback string) string {
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	if strings.ContainsRune(out, '{') {
		return fallback
	}
	return out
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
