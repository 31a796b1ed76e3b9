package models

// Intent is the closed set of caller goals derived from menu input.
type Intent string

const (
	IntentBookAppointment Intent = "book_appointment"
	IntentCheckBooking    Intent = "check_booking"
	IntentCustomerSupport Intent = "customer_support"
	IntentWorkingHours    Intent = "working_hours"
	IntentMakePayment     Intent = "make_payment"
	IntentSetReminder     Intent = "set_reminder"
	IntentEnglish         Intent = "english"
	IntentSpanish         Intent = "spanish"
	IntentUnknown         Intent = "unknown"
)

// ParseIntent maps a free-form label to a known intent. Labels that are not
// part of the closed set come back as IntentUnknown.
func ParseIntent(label string) Intent {
	switch Intent(label) {
	case IntentBookAppointment, IntentCheckBooking, IntentCustomerSupport,
		IntentWorkingHours, IntentMakePayment, IntentSetReminder,
		IntentEnglish, IntentSpanish:
		return Intent(label)
	default:
		return IntentUnknown
	}
}
