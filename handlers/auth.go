package handlers

import (
	"net/http"
	"time"

	"scrapiz/services/profile"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the session established by the hosted auth provider.
type AuthHandler struct {
	Profiles profile.ProfileService
	Denylist utils.TokenDenylist
}

func NewAuthHandler(profiles profile.ProfileService, denylist utils.TokenDenylist) *AuthHandler {
	return &AuthHandler{Profiles: profiles, Denylist: denylist}
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		// the session is valid even when the profile read fails
		getLogger(c).Error("Profile not loaded for session", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"email":   c.GetString(utils.CtxEmail),
		"profile": p,
	})
}

// SignOutHandler handles POST /api/auth/signout.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	hash := c.GetString(utils.CtxTokenHash)
	exp, _ := c.Get(utils.CtxTokenExp)
	until, _ := exp.(time.Time)
	if until.IsZero() {
		until = time.Now().Add(24 * time.Hour)
	}

	if err := h.Denylist.Revoke(c.Request.Context(), hash, until); err != nil {
		respondError(c, "Failed to sign out", err)
		return
	}
	getLogger(c).Info("Signed out")
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}
