package routes

import (
	"net/http"
	"time"

	"scrapiz/config"
	"scrapiz/handlers"
	"scrapiz/middleware"
	"scrapiz/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers session endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.GET("/me", hb.MeHandler)
		auth.POST("/signout", hb.SignOutHandler)
	}
}

// RegisterProfileRoutes registers profile endpoints.
func RegisterProfileRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	profile := api.Group("/profile")
	{
		profile.GET("", hb.GetProfileHandler)
		profile.PUT("", hb.UpdateProfileHandler)
		profile.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterAddressRoutes registers the address book.
func RegisterAddressRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	addresses := api.Group("/addresses")
	{
		addresses.GET("", hb.ListAddressesHandler)
		addresses.POST("", hb.CreateAddressHandler)
		addresses.PUT("/:id", hb.UpdateAddressHandler)
		addresses.DELETE("/:id", hb.DeleteAddressHandler)
		addresses.PUT("/:id/default", hb.SetDefaultAddressHandler)
	}
}

// RegisterBookingRoutes sets up the booking wizard and the user's booking history.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	wizard := api.Group("/booking")
	{
		wizard.GET("/options", hb.BookingOptionsHandler)
		wizard.POST("/drafts", hb.CreateDraftHandler)
		wizard.GET("/drafts/:draftID", hb.GetDraftHandler)
		wizard.PATCH("/drafts/:draftID", hb.UpdateDraftHandler)
		wizard.DELETE("/drafts/:draftID", hb.DiscardDraftHandler)
		wizard.POST("/drafts/:draftID/next", hb.NextStepHandler)
		wizard.POST("/drafts/:draftID/previous", hb.PreviousStepHandler)
		wizard.POST("/drafts/:draftID/photos", hb.AddPhotoHandler)
		wizard.DELETE("/drafts/:draftID/photos/:index", hb.RemovePhotoHandler)
		wizard.POST("/drafts/:draftID/submit", hb.SubmitDraftHandler)
	}

	history := api.Group("/bookings")
	{
		history.GET("", hb.ListMyBookingsHandler)
		history.GET("/:id", hb.GetMyBookingHandler)
		history.GET("/:id/support", hb.SupportLinkHandler)
	}
}

// RegisterAdminRoutes sets up the dashboard endpoints.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(middleware.RequireAdmin(hb.ProfileRepo))
		adminGroup.GET("/stats", hb.AdminStatsHandler)
		adminGroup.GET("/bookings", hb.AdminListBookingsHandler)
		adminGroup.GET("/bookings/export", hb.AdminExportBookingsHandler)
		adminGroup.GET("/bookings/:id", hb.AdminGetBookingHandler)
		adminGroup.PATCH("/bookings/:id", hb.AdminUpdateBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the background monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm ScrapIZ"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AppConfig.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if hb.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(hb.Metrics))
	}

	RegisterHealthRoute(r)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.Denylist))
	RegisterAuthRoutes(api, hb)
	RegisterProfileRoutes(api, hb)
	RegisterAddressRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
