package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FallbackVoiceResponse is spoken to the caller when a voice turn panics.
// Callers on the phone always hear a message, never a raw error.
const FallbackVoiceResponse = `<?xml version="1.0" encoding="UTF-8"?><Response><Say voice="alice" language="en-US">We are sorry, an application error has occurred. Please call again later.</Say></Response>`

// ErrorHandler is a middleware to catch panics and return structured errors.
// Voice webhook routes answer with spoken TwiML; everything else gets JSON.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				if strings.HasPrefix(c.Request.URL.Path, "/voice-bot") {
					c.Header("Content-Type", "text/xml")
					c.String(http.StatusOK, FallbackVoiceResponse)
				} else {
					c.JSON(http.StatusInternalServerError, ErrorResponse{
						Message: "Internal Server Error",
						Details: "An unexpected error occurred. Please try again later.",
					})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
