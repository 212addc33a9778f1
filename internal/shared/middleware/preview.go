package middleware

import (
	"github.com/gin-gonic/gin"

	"heritage-site/internal/infrastructure/contentstore"
	"heritage-site/internal/shared"
	"heritage-site/pkg/jwt"
	"heritage-site/pkg/logger"
)

// PreviewKey is set on the gin context when the request is in preview mode
const PreviewKey = "preview"

// Preview switches the request to draft reads when it carries a valid
// preview cookie. Invalid or expired cookies fall back to public reads.
func Preview(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(shared.PreviewCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		if _, err := tokens.ValidatePreviewToken(token); err != nil {
			logger.Debug("ignoring invalid preview cookie: " + err.Error())
			c.Next()
			return
		}

		c.Set(PreviewKey, true)
		c.Request = c.Request.WithContext(contentstore.ContextWithPreview(c.Request.Context()))
		c.Header("Cache-Control", "private, no-store")
		c.Next()
	}
}
