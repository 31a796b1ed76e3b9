package routes

import (
	"net/http"
	"time"

	"voicedesk/handlers"
	"voicedesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVoiceBotRoutes registers the telephony webhook endpoints, one per
// dialog turn.
func RegisterVoiceBotRoutes(r *gin.Engine, vb *handlers.VoiceBotHandler) {
	api := r.Group("/voice-bot")
	{
		api.POST("/webhook", vb.WebhookHandler)
		api.POST("/menu-choice", vb.MenuChoiceHandler)
		api.POST("/booking-date", vb.BookingDateHandler)
		api.POST("/booking-time", vb.BookingTimeHandler)
		api.POST("/booking-confirmation", vb.BookingConfirmationHandler)
		api.POST("/booking-lookup", vb.BookingLookupHandler)
		api.POST("/post-booking", vb.PostBookingHandler)
		api.POST("/post-action", vb.PostActionHandler)
		api.POST("/support-transfer", vb.SupportTransferHandler)
		api.POST("/main-menu", vb.MainMenuHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, admin *handlers.AdminHandler) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/bookings", admin.GetAllBookingsHandler)
		adminGroup.GET("/sessions", admin.GetActiveSessionsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, vb *handlers.VoiceBotHandler, admin *handlers.AdminHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterVoiceBotRoutes(r, vb)
	RegisterAdminRoutes(r, admin)
	RegisterHealthRoute(r)
}
