package models

import "time"

// CallState identifies where a call currently sits in the dialog flow.
// Exactly one state is active per session at any time.
type CallState string

const (
	StateGreeting            CallState = "greeting"
	StateMainMenu            CallState = "main_menu"
	StateBookingDate         CallState = "booking_date"
	StateBookingTime         CallState = "booking_time"
	StateBookingConfirmation CallState = "booking_confirmation"
	StateCheckBooking        CallState = "check_booking"
	StateCustomerSupport     CallState = "customer_support"
	StateWorkingHours        CallState = "working_hours"
	StatePayment             CallState = "payment"
	StateReminder            CallState = "reminder"
	StateCompleted           CallState = "completed"
)

// BookingDraft accumulates booking details across the booking dialog states
// before the record is persisted.
type BookingDraft struct {
	ID            string `json:"id,omitempty"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// Session holds per-call conversational state across otherwise stateless
// webhook turns. One session exists per active call, keyed by CallSid.
type Session struct {
	CallSid    string       `json:"callSid"`
	State      CallState    `json:"state"`
	RetryCount int          `json:"retryCount"`
	Booking    BookingDraft `json:"bookingData"`
	Language   string       `json:"language"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// NewSession returns a fresh session for a call that has just been seen for
// the first time.
func NewSession(callSid, language string) *Session {
	now := time.Now()
	return &Session{
		CallSid:    callSid,
		State:      StateGreeting,
		RetryCount: 0,
		Booking:    BookingDraft{},
		Language:   language,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SessionPatch names the mutable session fields for partial updates.
// Nil fields are left unchanged by Apply.
type SessionPatch struct {
	State      *CallState
	RetryCount *int
	Booking    *BookingDraft
	Language   *string
}

// Apply merges the patch into the session. It does not touch UpdatedAt;
// the session manager refreshes that on save.
func (p SessionPatch) Apply(s *Session) {
	if p.State != nil {
		s.State = *p.State
	}
	if p.RetryCount != nil {
		s.RetryCount = *p.RetryCount
	}
	if p.Booking != nil {
		s.Booking = *p.Booking
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
}

// PatchState is a convenience constructor for a state-only patch.
func PatchState(state CallState) SessionPatch {
	return SessionPatch{State: &state}
}
