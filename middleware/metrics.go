package middleware

import (
	"strconv"
	"time"

	"scrapiz/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsMiddleware records request counts and latency per route template.
func MetricsMiddleware(m *utils.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if userID := c.GetString(utils.CtxUserID); userID != "" {
			fields = append(fields, zap.String("userID", userID))
		}
		if c.Writer.Status() >= 500 {
			zap.L().Error("Request", fields...)
			return
		}
		zap.L().Debug("Request", fields...)
	}
}
