package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "voicedesk/database/repository/booking"
	"voicedesk/models"
	"voicedesk/services/intent"
	"voicedesk/services/session"
	"voicedesk/services/telephony"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bookingCallTimeout = 5 * time.Second

// DefaultEngine drives the call through the dialog states. A nil Bookings
// repository behaves like an unreachable booking store: creates are skipped
// and lookups miss.
type DefaultEngine struct {
	Sessions       session.Manager
	Bookings       bookingRepo.Repository
	Interpreter    intent.Interpreter
	Renderer       telephony.Renderer
	Logger         *zap.Logger
	CompanyName    string
	RetryThreshold int
}

// HandleGreeting opens the call (or re-enters the menu) and prompts the
// main menu. First contact creates the session.
func (e *DefaultEngine) HandleGreeting(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Load(ctx, callSid)
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateMainMenu))

	return e.Renderer.Render(greetingMessage(e.CompanyName), &models.Gather{
		Action:         PathMenuChoice,
		TimeoutSeconds: 10,
	}, "")
}

// HandleMenuChoice routes the caller's menu selection.
func (e *DefaultEngine) HandleMenuChoice(ctx context.Context, callSid, userInput string) (string, error) {
	switch e.Interpreter.Classify(ctx, userInput, intent.ContextMainMenu) {
	case models.IntentBookAppointment:
		return e.handleBookAppointment(ctx, callSid)
	case models.IntentCheckBooking:
		return e.handleCheckBooking(ctx, callSid)
	case models.IntentCustomerSupport:
		return e.handleCustomerSupport(ctx, callSid)
	case models.IntentWorkingHours:
		return e.handleWorkingHours(ctx, callSid)
	case models.IntentMakePayment:
		return e.handlePayment(ctx, callSid)
	case models.IntentSetReminder:
		return e.handleReminder(ctx, callSid)
	case models.IntentEnglish:
		return e.handleLanguageChoice(ctx, callSid, "english")
	case models.IntentSpanish:
		return e.handleLanguageChoice(ctx, callSid, "spanish")
	default:
		return e.handleUnknownInput(ctx, callSid)
	}
}

func (e *DefaultEngine) handleBookAppointment(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateBookingDate))

	return e.Renderer.Render(datePromptMessage, &models.Gather{
		Action:         PathBookingDate,
		TimeoutSeconds: 15,
	}, "")
}

// HandleBookingDate captures the preferred date. Free text is accepted
// verbatim, so the re-prompt branch only fires on empty input.
func (e *DefaultEngine) HandleBookingDate(ctx context.Context, callSid, userInput string) (string, error) {
	s := e.Sessions.Load(ctx, callSid)

	dateStr := parseDateInput(userInput, time.Now())
	if dateStr == "" {
		return e.Renderer.Render(dateRepromptMessage, &models.Gather{
			Action:         PathBookingDate,
			TimeoutSeconds: 15,
		}, "")
	}

	draft := s.Booking
	draft.Date = dateStr
	state := models.StateBookingTime
	e.Sessions.Update(ctx, callSid, models.SessionPatch{Booking: &draft, State: &state})

	message := fmt.Sprintf("Great! I have %s noted. ", dateStr) +
		"What time would you prefer? You can say something like '2 PM', '10:30 AM', or 'morning'."
	return e.Renderer.Render(message, &models.Gather{
		Action:         PathBookingTime,
		TimeoutSeconds: 15,
	}, "")
}

// HandleBookingTime captures the preferred time, assigns a booking ID and
// persists the booking.
func (e *DefaultEngine) HandleBookingTime(ctx context.Context, callSid, userInput string) (string, error) {
	s := e.Sessions.Load(ctx, callSid)

	timeStr := parseTimeInput(userInput)
	if timeStr == "" {
		return e.Renderer.Render(timeRepromptMessage, &models.Gather{
			Action:         PathBookingTime,
			TimeoutSeconds: 15,
		}, "")
	}

	draft := s.Booking
	draft.Time = timeStr
	draft.ID = uuid.New().String()[:8]
	state := models.StateBookingConfirmation
	e.Sessions.Update(ctx, callSid, models.SessionPatch{Booking: &draft, State: &state})

	e.createBooking(ctx, draft, callSid)

	message := fmt.Sprintf("Perfect! I have scheduled your appointment for %s at %s. ", draft.Date, timeStr) +
		fmt.Sprintf("Your booking ID is %s. ", draft.ID) +
		"Is this correct? Say 'yes' to confirm or 'no' to make changes."
	return e.Renderer.Render(message, &models.Gather{
		Action:         PathBookingConfirmation,
		TimeoutSeconds: 10,
	}, "")
}

// HandleBookingConfirmation finishes the booking on an affirmative answer;
// anything else discards the drafted date and time and restarts.
func (e *DefaultEngine) HandleBookingConfirmation(ctx context.Context, callSid, userInput string) (string, error) {
	s := e.Sessions.Load(ctx, callSid)

	if containsAny(userInput, "yes", "confirm", "correct") {
		e.Sessions.Update(ctx, callSid, models.PatchState(models.StateCompleted))

		message := "Excellent! Your appointment has been confirmed. " +
			fmt.Sprintf("Your booking ID is %s. ", s.Booking.ID) +
			"You'll receive a confirmation. Is there anything else I can help you with today? " +
			"Say 'main menu' to return to the main menu or 'goodbye' to end the call."
		return e.Renderer.Render(message, &models.Gather{
			Action:         PathPostBooking,
			TimeoutSeconds: 10,
		}, "")
	}

	draft := s.Booking
	draft.Date = ""
	draft.Time = ""
	state := models.StateBookingDate
	e.Sessions.Update(ctx, callSid, models.SessionPatch{Booking: &draft, State: &state})

	return e.Renderer.Render(bookingRestartMessage, &models.Gather{
		Action:         PathBookingDate,
		TimeoutSeconds: 15,
	}, "")
}

func (e *DefaultEngine) handleCheckBooking(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateCheckBooking))

	return e.Renderer.Render(lookupPromptMessage, &models.Gather{
		Action:         PathBookingLookup,
		TimeoutSeconds: 15,
	}, "")
}

// HandleBookingLookup looks the booking up by ID. Collaborator failure is
// treated as a miss, so the caller lands on the support-transfer offer.
func (e *DefaultEngine) HandleBookingLookup(ctx context.Context, callSid, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return e.handleUnknownInput(ctx, callSid)
	}

	booking := e.findBooking(ctx, strings.TrimSpace(userInput))
	if booking != nil {
		message := fmt.Sprintf("I found your booking! You have an appointment scheduled for %s at %s. ", booking.Date, booking.Time) +
			"Is there anything else I can help you with? Say 'main menu' to return to the main menu."
		return e.Renderer.Render(message, &models.Gather{
			Action:         PathPostAction,
			TimeoutSeconds: 10,
		}, "")
	}

	return e.Renderer.Render(lookupMissMessage, &models.Gather{
		Action:         PathSupportTransfer,
		TimeoutSeconds: 10,
	}, "")
}

// HandlePostBooking routes the caller after a confirmed booking.
func (e *DefaultEngine) HandlePostBooking(ctx context.Context, callSid, userInput string) (string, error) {
	if containsAny(userInput, "goodbye", "bye", "no") {
		return e.handleGoodbye(ctx, callSid)
	}
	return e.HandleGreeting(ctx, callSid)
}

// HandlePostAction routes the caller after an informational branch.
func (e *DefaultEngine) HandlePostAction(ctx context.Context, callSid, userInput string) (string, error) {
	if containsAny(userInput, "yes", "main menu", "menu") {
		return e.HandleGreeting(ctx, callSid)
	}
	return e.handleGoodbye(ctx, callSid)
}

// HandleSupportTransfer acts on the caller's answer to the transfer offer.
func (e *DefaultEngine) HandleSupportTransfer(ctx context.Context, callSid, userInput string) (string, error) {
	if containsAny(userInput, "yes", "support") {
		return e.handleCustomerSupport(ctx, callSid)
	}
	return e.HandleGreeting(ctx, callSid)
}

func (e *DefaultEngine) handleCustomerSupport(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateCustomerSupport))
	return e.Renderer.Render(supportMessage, nil, "")
}

func (e *DefaultEngine) handleWorkingHours(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateWorkingHours))

	return e.Renderer.Render(workingHoursMessage(), &models.Gather{
		Action:         PathPostAction,
		TimeoutSeconds: 10,
	}, "")
}

func (e *DefaultEngine) handlePayment(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StatePayment))
	return e.Renderer.Render(paymentMessage, nil, PathMainMenu)
}

func (e *DefaultEngine) handleReminder(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateReminder))

	return e.Renderer.Render(reminderMessage, &models.Gather{
		Action:         PathPostAction,
		TimeoutSeconds: 10,
	}, "")
}

func (e *DefaultEngine) handleLanguageChoice(ctx context.Context, callSid, language string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.SessionPatch{Language: &language})
	return e.HandleGreeting(ctx, callSid)
}

// handleUnknownInput counts the miss and re-prompts; at the escalation
// threshold the caller is routed to customer support instead. The counter
// deliberately persists across states and is only reset by session expiry.
func (e *DefaultEngine) handleUnknownInput(ctx context.Context, callSid string) (string, error) {
	s := e.Sessions.Load(ctx, callSid)

	newRetryCount := s.RetryCount + 1
	e.Sessions.Update(ctx, callSid, models.SessionPatch{RetryCount: &newRetryCount})

	if newRetryCount >= e.RetryThreshold {
		e.Logger.Info("retry threshold reached, escalating to customer support",
			zap.String("callSid", callSid), zap.Int("retryCount", newRetryCount))
		return e.handleCustomerSupport(ctx, callSid)
	}

	return e.Renderer.Render(menuRepromptMessage, &models.Gather{
		Action:         PathMenuChoice,
		TimeoutSeconds: 10,
	}, "")
}

func (e *DefaultEngine) handleGoodbye(ctx context.Context, callSid string) (string, error) {
	e.Sessions.Update(ctx, callSid, models.PatchState(models.StateCompleted))
	return e.Renderer.Render(goodbyeMessage, nil, "")
}

// createBooking persists the drafted booking. Failures are logged and
// swallowed; the dialog proceeds either way.
func (e *DefaultEngine) createBooking(ctx context.Context, draft models.BookingDraft, callSid string) {
	if e.Bookings == nil {
		e.Logger.Warn("booking store unavailable, booking not persisted", zap.String("callSid", callSid))
		return
	}

	cctx, cancel := context.WithTimeout(ctx, bookingCallTimeout)
	defer cancel()

	if _, err := e.Bookings.Create(cctx, draft, callSid); err != nil {
		e.Logger.Error("failed to create booking", zap.String("callSid", callSid), zap.Error(err))
	}
}

// findBooking returns nil both for a genuine miss and for a collaborator
// failure.
func (e *DefaultEngine) findBooking(ctx context.Context, id string) *models.Booking {
	if e.Bookings == nil {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, bookingCallTimeout)
	defer cancel()

	booking, err := e.Bookings.FindByID(cctx, id)
	if err != nil {
		e.Logger.Error("booking lookup failed", zap.String("bookingId", id), zap.Error(err))
		return nil
	}
	return booking
}

func containsAny(input string, phrases ...string) bool {
	lower := strings.ToLower(input)
	if strings.TrimSpace(lower) == "" {
		return false
	}
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
