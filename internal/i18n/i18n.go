package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocalePtBR = "pt-BR"
	LocaleEnUS = "en-US"
	LocaleEsES = "es-ES"

	DefaultLocale = LocalePtBR
)

var supportedLocales = []string{LocalePtBR, LocaleEnUS, LocaleEsES}

var matcher = language.NewMatcher([]language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
	language.EuropeanSpanish,
})

// SupportedLocales 支持的语言列表
func SupportedLocales() []string {
	out := make([]string, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// ResolveLocale 依次读取 lang 参数、X-Locale 与 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale, ok := Normalize(c.Query("lang")); ok {
		return locale
	}
	if locale, ok := Normalize(c.GetHeader("X-Locale")); ok {
		return locale
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}

// Normalize 将语言标识归一到支持的语言
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return "", false
	}
	return supportedLocales[idx], true
}

// MatchAcceptLanguage 按 Accept-Language 选择语言，无匹配时返回默认语言
func MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedLocales[idx]
}

// T 翻译，缺失时回退默认语言，再回退为 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := catalog[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
