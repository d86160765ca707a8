package middleware

import (
	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/shared/i18n"
)

const (
	LanguageCookie = "lang"
	languageKey    = "lang"
)

// Language resolves the UI language from the lang cookie, then Accept-Language.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(LanguageCookie)
		c.Set(languageKey, i18n.Resolve(cookie, c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// GetLanguage falls back to the default language when Language did not run.
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(languageKey); lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}
