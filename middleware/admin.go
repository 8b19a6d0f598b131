package middleware

import (
	"errors"
	"net/http"

	"scrapiz/database"
	profileRepo "scrapiz/database/repository/profile"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAdmin lets through callers whose profile carries the admin role. Must run after JWTAuthMiddleware.
func RequireAdmin(profiles profileRepo.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(utils.CtxUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		p, err := profiles.GetByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			zap.L().Error("Admin check failed", zap.String("userID", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify access"})
			return
		}
		if p == nil || !p.IsAdmin() {
			zap.L().Warn("Non-admin access to dashboard", zap.String("userID", userID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Set(utils.CtxProfile, p)
		c.Next()
	}
}
