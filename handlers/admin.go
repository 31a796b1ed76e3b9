package handlers

import (
	"net/http"

	bookingRepo "voicedesk/database/repository/booking"
	"voicedesk/services/session"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the observability endpoints: booking listings and the
// live-session snapshot.
type AdminHandler struct {
	Bookings bookingRepo.Repository
	Sessions session.Manager
	Logger   *zap.Logger
}

func NewAdminHandler(bookings bookingRepo.Repository, sessions session.Manager, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Sessions: sessions, Logger: logger}
}

// GetAllBookingsHandler lists every booking, newest-first.
func (h *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	if h.Bookings == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "booking store unavailable", "")
		return
	}

	bookings, err := h.Bookings.All(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetActiveSessionsHandler reports the live call sessions.
func (h *AdminHandler) GetActiveSessionsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	ids := h.Sessions.ListActiveSessionIDs(ctx)
	c.JSON(http.StatusOK, gin.H{
		"count":        len(ids),
		"sessions":     ids,
		"redisHealthy": h.Sessions.Healthy(ctx),
	})
}
