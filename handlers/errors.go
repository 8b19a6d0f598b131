package handlers

import (
	"errors"
	"net/http"

	"scrapiz/services/address"
	"scrapiz/services/admin"
	"scrapiz/services/booking"
	"scrapiz/services/profile"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, address.ErrInvalidAddress),
		errors.Is(err, profile.ErrInvalidProfile),
		errors.Is(err, booking.ErrInvalidDraft),
		errors.Is(err, booking.ErrStepIncomplete),
		errors.Is(err, booking.ErrTooManyPhotos),
		errors.Is(err, booking.ErrInvalidPhoto),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, admin.ErrEmptyUpdate):
		return http.StatusBadRequest
	case errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, booking.ErrDraftNotFound),
		errors.Is(err, booking.ErrPhotoNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrDraftLocked),
		errors.Is(err, booking.ErrSubmissionInProgress),
		errors.Is(err, booking.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status it maps to. Server errors carry the backend message as details.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		utils.JSONError(c, status, message, err.Error())
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

// respondSubmissionError keeps the ids of what was already written so the client can retry.
// The status follows the cause, so a missing address is still a 404.
func respondSubmissionError(c *gin.Context, err error) {
	var se *booking.SubmissionError
	if !errors.As(err, &se) {
		respondError(c, "Failed to submit booking", err)
		return
	}
	status := statusFor(se.Err)
	getLogger(c).Error("Submission failed",
		zap.String("stage", se.Stage),
		zap.String("submissionID", se.SubmissionID),
		zap.String("bookingID", se.BookingID),
		zap.Error(se.Err))
	message := "Failed to submit booking"
	if status < http.StatusInternalServerError {
		message = se.Err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":         message,
		"details":       se.Err.Error(),
		"stage":         se.Stage,
		"submission_id": se.SubmissionID,
		"booking_id":    se.BookingID,
	})
}

func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(utils.CtxUserID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}
