package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the first parseable address among the leftmost
// X-Forwarded-For entry, X-Real-IP and the connection's remote address.
// Rate limiting keys on it, so a request with no usable address falls into
// one shared "unknown" bucket instead of getting its own.
func ExtractClientIP(c *gin.Context) string {
	candidates := make([]string, 0, 3)

	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		candidates = append(candidates, strings.TrimSpace(first))
	}
	candidates = append(candidates, strings.TrimSpace(c.GetHeader("X-Real-IP")))

	remote := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	candidates = append(candidates, remote)

	for _, ip := range candidates {
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	return "unknown"
}
