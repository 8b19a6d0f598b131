package handlers

import (
	"io"
	"net/http"
	"strconv"

	"scrapiz/models"
	"scrapiz/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler drives the booking wizard.
type BookingHandler struct {
	Drafts    *booking.DraftService
	Submitter *booking.Submitter
}

func NewBookingHandler(drafts *booking.DraftService, submitter *booking.Submitter) *BookingHandler {
	return &BookingHandler{Drafts: drafts, Submitter: submitter}
}

type categoryOption struct {
	Value models.MaterialCategory `json:"value"`
	Label string                  `json:"label"`
}

// OptionsHandler handles GET /api/booking/options.
func (h *BookingHandler) OptionsHandler(c *gin.Context) {
	categories := make([]categoryOption, 0, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		categories = append(categories, categoryOption{Value: cat, Label: cat.Label()})
	}
	c.JSON(http.StatusOK, gin.H{
		"categories":      categories,
		"time_slots":      models.TimeSlots,
		"dates":           h.Drafts.Wizard.AvailableDates(),
		"payment_methods": []models.PaymentMethod{models.PaymentUPI, models.PaymentCash},
		"max_photos":      models.MaxDraftPhotos,
	})
}

// CreateDraftHandler handles POST /api/booking/drafts.
func (h *BookingHandler) CreateDraftHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	d, err := h.Drafts.Create(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to start booking", err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// GetDraftHandler handles GET /api/booking/drafts/:draftID.
func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	d, err := h.Drafts.Get(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondError(c, "Failed to load draft", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateDraftHandler handles PATCH /api/booking/drafts/:draftID.
func (h *BookingHandler) UpdateDraftHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var change models.DraftChange
	if err := c.ShouldBindJSON(&change); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	d, err := h.Drafts.Update(c.Request.Context(), userID, c.Param("draftID"), change)
	if err != nil {
		respondError(c, "Failed to update draft", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DiscardDraftHandler handles DELETE /api/booking/drafts/:draftID.
func (h *BookingHandler) DiscardDraftHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Drafts.Discard(c.Request.Context(), userID, c.Param("draftID")); err != nil {
		respondError(c, "Failed to discard draft", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "discarded"})
}

// NextStepHandler handles POST /api/booking/drafts/:draftID/next.
func (h *BookingHandler) NextStepHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	d, err := h.Drafts.Next(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondError(c, "Failed to advance draft", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// PreviousStepHandler handles POST /api/booking/drafts/:draftID/previous.
func (h *BookingHandler) PreviousStepHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	d, err := h.Drafts.Previous(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondError(c, "Failed to go back", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// AddPhotoHandler handles POST /api/booking/drafts/:draftID/photos with a multipart "file".
func (h *BookingHandler) AddPhotoHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > booking.MaxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, booking.MaxPhotoBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
		return
	}

	d, err := h.Drafts.AddPhoto(c.Request.Context(), userID, c.Param("draftID"), fileHeader.Filename, data)
	if err != nil {
		respondError(c, "Failed to add photo", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// RemovePhotoHandler handles DELETE /api/booking/drafts/:draftID/photos/:index.
func (h *BookingHandler) RemovePhotoHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo index"})
		return
	}
	d, err := h.Drafts.RemovePhoto(c.Request.Context(), userID, c.Param("draftID"), index)
	if err != nil {
		respondError(c, "Failed to remove photo", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// SubmitDraftHandler handles POST /api/booking/drafts/:draftID/submit.
func (h *BookingHandler) SubmitDraftHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := h.Submitter.Submit(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondSubmissionError(c, err)
		return
	}
	getLogger(c).Info("Pickup scheduled", zap.String("bookingID", b.ID))
	c.JSON(http.StatusCreated, b)
}
