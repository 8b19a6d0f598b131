package handlers

import (
	"net/http"

	"scrapiz/services/booking"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves the signed-in user's own bookings.
type HistoryHandler struct {
	Service *booking.HistoryService
}

func NewHistoryHandler(service *booking.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

// ListMyBookingsHandler handles GET /api/bookings.
func (h *HistoryHandler) ListMyBookingsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Service.ListForUser(c.Request.Context(), userID))
}

// GetMyBookingHandler handles GET /api/bookings/:id.
func (h *HistoryHandler) GetMyBookingHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := h.Service.GetForUser(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SupportLinkHandler handles GET /api/bookings/:id/support.
func (h *HistoryHandler) SupportLinkHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	link, err := h.Service.SupportLink(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, "Failed to build support link", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}
