package handlers

import (
	"context"
	"net/http"

	"voicedesk/services/dialog"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceBotHandler exposes one webhook per dialog turn. The telephony
// provider posts CallSid plus the caller's speech or keypad input and gets a
// markup document back.
type VoiceBotHandler struct {
	Engine dialog.Engine
	Logger *zap.Logger
}

func NewVoiceBotHandler(engine dialog.Engine, logger *zap.Logger) *VoiceBotHandler {
	return &VoiceBotHandler{Engine: engine, Logger: logger}
}

// userInput extracts the caller's input, speech first, then digits.
func userInput(c *gin.Context) string {
	if speech := c.PostForm("SpeechResult"); speech != "" {
		return speech
	}
	return c.PostForm("Digits")
}

// respond writes a voice document. On engine failure the caller still hears
// a spoken message, never a raw error.
func (h *VoiceBotHandler) respond(c *gin.Context, doc string, err error) {
	c.Header("Content-Type", "text/xml")
	if err != nil {
		h.Logger.Error("voice turn failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.String(http.StatusOK, utils.FallbackVoiceResponse)
		return
	}
	c.String(http.StatusOK, doc)
}

func (h *VoiceBotHandler) turn(c *gin.Context, handle func(ctx context.Context, callSid, input string) (string, error)) {
	callSid := c.PostForm("CallSid")
	doc, err := handle(c.Request.Context(), callSid, userInput(c))
	h.respond(c, doc, err)
}

// WebhookHandler answers the initial call webhook with the greeting.
func (h *VoiceBotHandler) WebhookHandler(c *gin.Context) {
	doc, err := h.Engine.HandleGreeting(c.Request.Context(), c.PostForm("CallSid"))
	h.respond(c, doc, err)
}

func (h *VoiceBotHandler) MenuChoiceHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandleMenuChoice)
}

func (h *VoiceBotHandler) BookingDateHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandleBookingDate)
}

func (h *VoiceBotHandler) BookingTimeHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandleBookingTime)
}

func (h *VoiceBotHandler) BookingConfirmationHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandleBookingConfirmation)
}

func (h *VoiceBotHandler) BookingLookupHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandleBookingLookup)
}

func (h *VoiceBotHandler) PostBookingHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandlePostBooking)
}

func (h *VoiceBotHandler) PostActionHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandlePostAction)
}

func (h *VoiceBotHandler) SupportTransferHandler(c *gin.Context) {
	h.turn(c, h.Engine.HandleSupportTransfer)
}

// MainMenuHandler replays the greeting, used as a redirect target.
func (h *VoiceBotHandler) MainMenuHandler(c *gin.Context) {
	doc, err := h.Engine.HandleGreeting(c.Request.Context(), c.PostForm("CallSid"))
	h.respond(c, doc, err)
}
