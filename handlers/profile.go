package handlers

import (
	"net/http"

	"scrapiz/models"
	"scrapiz/services/profile"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Service profile.ProfileService
}

func NewProfileHandler(service profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: service}
}

// GetProfileHandler handles GET /api/profile.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.Service.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfileHandler handles PUT /api/profile.
func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Service.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateFCMTokenHandler handles PUT /api/profile/fcm-token.
func (h *ProfileHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fcm_token is required"})
		return
	}
	if err := h.Service.RegisterDevice(c.Request.Context(), userID, req.FCMToken); err != nil {
		respondError(c, "Failed to register device", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
