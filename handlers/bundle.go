package handlers

import (
	profileRepo "scrapiz/database/repository/profile"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	ProfileRepo profileRepo.ProfileRepository
	Denylist    utils.TokenDenylist
	Metrics     *utils.Metrics
	// MetricsHandler serves /metrics; nil disables the route.
	MetricsHandler gin.HandlerFunc

	// Auth endpoints
	MeHandler      gin.HandlerFunc
	SignOutHandler gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler     gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc

	// Address endpoints
	ListAddressesHandler     gin.HandlerFunc
	CreateAddressHandler     gin.HandlerFunc
	UpdateAddressHandler     gin.HandlerFunc
	DeleteAddressHandler     gin.HandlerFunc
	SetDefaultAddressHandler gin.HandlerFunc

	// Booking wizard endpoints
	BookingOptionsHandler gin.HandlerFunc
	CreateDraftHandler    gin.HandlerFunc
	GetDraftHandler       gin.HandlerFunc
	UpdateDraftHandler    gin.HandlerFunc
	DiscardDraftHandler   gin.HandlerFunc
	NextStepHandler       gin.HandlerFunc
	PreviousStepHandler   gin.HandlerFunc
	AddPhotoHandler       gin.HandlerFunc
	RemovePhotoHandler    gin.HandlerFunc
	SubmitDraftHandler    gin.HandlerFunc

	// My bookings endpoints
	ListMyBookingsHandler gin.HandlerFunc
	GetMyBookingHandler   gin.HandlerFunc
	SupportLinkHandler    gin.HandlerFunc

	// Admin endpoints
	AdminStatsHandler          gin.HandlerFunc
	AdminListBookingsHandler   gin.HandlerFunc
	AdminGetBookingHandler     gin.HandlerFunc
	AdminUpdateBookingHandler  gin.HandlerFunc
	AdminExportBookingsHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler's methods into the bundle.
func NewHandlerBundle(
	auth *AuthHandler,
	profiles *ProfileHandler,
	addresses *AddressHandler,
	bookings *BookingHandler,
	history *HistoryHandler,
	admin *AdminHandler,
) *HandlerBundle {
	return &HandlerBundle{
		Denylist: auth.Denylist,

		MeHandler:      auth.MeHandler,
		SignOutHandler: auth.SignOutHandler,

		GetProfileHandler:     profiles.GetProfileHandler,
		UpdateProfileHandler:  profiles.UpdateProfileHandler,
		UpdateFCMTokenHandler: profiles.UpdateFCMTokenHandler,

		ListAddressesHandler:     addresses.ListAddressesHandler,
		CreateAddressHandler:     addresses.CreateAddressHandler,
		UpdateAddressHandler:     addresses.UpdateAddressHandler,
		DeleteAddressHandler:     addresses.DeleteAddressHandler,
		SetDefaultAddressHandler: addresses.SetDefaultAddressHandler,

		BookingOptionsHandler: bookings.OptionsHandler,
		CreateDraftHandler:    bookings.CreateDraftHandler,
		GetDraftHandler:       bookings.GetDraftHandler,
		UpdateDraftHandler:    bookings.UpdateDraftHandler,
		DiscardDraftHandler:   bookings.DiscardDraftHandler,
		NextStepHandler:       bookings.NextStepHandler,
		PreviousStepHandler:   bookings.PreviousStepHandler,
		AddPhotoHandler:       bookings.AddPhotoHandler,
		RemovePhotoHandler:    bookings.RemovePhotoHandler,
		SubmitDraftHandler:    bookings.SubmitDraftHandler,

		ListMyBookingsHandler: history.ListMyBookingsHandler,
		GetMyBookingHandler:   history.GetMyBookingHandler,
		SupportLinkHandler:    history.SupportLinkHandler,

		AdminStatsHandler:          admin.StatsHandler,
		AdminListBookingsHandler:   admin.ListBookingsHandler,
		AdminGetBookingHandler:     admin.GetBookingHandler,
		AdminUpdateBookingHandler:  admin.UpdateBookingHandler,
		AdminExportBookingsHandler: admin.ExportBookingsHandler,
	}
}
