package middleware

import (
	"github.com/gin-gonic/gin"

	"heritage-site/internal/shared/utils"
)

// ClientIPKey is the gin context key holding the caller address
const ClientIPKey = "client_ip"

// ClientIP resolves the caller address once per request. Register it before
// the rate limiter, which keys its buckets on the address.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}
