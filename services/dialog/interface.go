package dialog

import "context"

// Webhook paths the gather verbs post the next turn to. Each path maps to
// one dialog context.
const (
	PathWebhook             = "/voice-bot/webhook"
	PathMenuChoice          = "/voice-bot/menu-choice"
	PathBookingDate         = "/voice-bot/booking-date"
	PathBookingTime         = "/voice-bot/booking-time"
	PathBookingConfirmation = "/voice-bot/booking-confirmation"
	PathBookingLookup       = "/voice-bot/booking-lookup"
	PathPostBooking         = "/voice-bot/post-booking"
	PathPostAction          = "/voice-bot/post-action"
	PathSupportTransfer     = "/voice-bot/support-transfer"
	PathMainMenu            = "/voice-bot/main-menu"
)

// Engine is the dialog state machine. Each method handles one turn: it
// interprets the caller's input against the session state, advances the
// session and returns the rendered prompt document for the telephony layer.
type Engine interface {
	HandleGreeting(ctx context.Context, callSid string) (string, error)
	HandleMenuChoice(ctx context.Context, callSid, userInput string) (string, error)
	HandleBookingDate(ctx context.Context, callSid, userInput string) (string, error)
	HandleBookingTime(ctx context.Context, callSid, userInput string) (string, error)
	HandleBookingConfirmation(ctx context.Context, callSid, userInput string) (string, error)
	HandleBookingLookup(ctx context.Context, callSid, userInput string) (string, error)
	HandlePostBooking(ctx context.Context, callSid, userInput string) (string, error)
	HandlePostAction(ctx context.Context, callSid, userInput string) (string, error)
	HandleSupportTransfer(ctx context.Context, callSid, userInput string) (string, error)
}
