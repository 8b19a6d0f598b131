package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"scrapiz/models"
	"scrapiz/services/admin"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

// StatsHandler handles GET /api/admin/stats. It always answers 200.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Stats(c.Request.Context()))
}

// ListBookingsHandler handles GET /api/admin/bookings?status=.
func (h *AdminHandler) ListBookingsHandler(c *gin.Context) {
	list, err := h.Service.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, "Failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBookingHandler handles GET /api/admin/bookings/:id.
func (h *AdminHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingHandler handles PATCH /api/admin/bookings/:id?status=.
// The query keeps the caller's table filter so the refreshed list matches what they are looking at.
func (h *AdminHandler) UpdateBookingHandler(c *gin.Context) {
	var update models.BookingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updated, list, err := h.Service.UpdateBooking(c.Request.Context(), c.Param("id"), update, c.Query("status"))
	if err != nil {
		respondError(c, "Failed to update booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated, "bookings": list})
}

// ExportBookingsHandler handles GET /api/admin/bookings/export?status=.
func (h *AdminHandler) ExportBookingsHandler(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	if _, err := admin.ParseStatusFilter(status); err != nil {
		respondError(c, "Invalid status filter", err)
		return
	}

	var buf bytes.Buffer
	if err := h.Service.ExportBookings(c.Request.Context(), status, &buf); err != nil {
		respondError(c, "Failed to export bookings", err)
		return
	}

	fileName := fmt.Sprintf("bookings_%s_%s.xlsx", status, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
