package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// getClientIP returns the caller address. Forwarding headers are honoured only when the
// request arrived through one of the engine's trusted proxies (TRUSTED_PROXIES).
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}
