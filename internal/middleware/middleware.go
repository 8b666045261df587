package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"golang.org/x/text/language"
)

const localeKey = "locale"

// RequestLogger logs every request once it has been served
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ev := log.Info()
		if status := c.Writer.Status(); status >= 500 {
			ev = log.Error()
		} else if status >= 400 {
			ev = log.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request served")
	}
}

// Localize picks the response language from Accept-Language
func Localize(fallback language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeKey, validation.MatchLocale(c.GetHeader("Accept-Language"), fallback))
		c.Next()
	}
}

// Locale returns the language chosen for the request, English when none was set.
func Locale(c *gin.Context) language.Tag {
	if v, ok := c.Get(localeKey); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return language.English
}
