package handlers

import (
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the global one,
// tagged with the caller when known.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, exists := c.Get("logger"); exists {
		if ctxLogger, ok := l.(*zap.Logger); ok {
			logger = ctxLogger
		}
	}
	if userID := c.GetString(utils.CtxUserID); userID != "" {
		return logger.With(zap.String("userID", userID))
	}
	return logger
}
