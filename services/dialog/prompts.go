package dialog

import (
	"fmt"
	"strings"
)

const (
	goodbyeMessage = "Thank you for calling. Have a great day!"

	datePromptMessage = "I'd be happy to help you book an appointment. " +
		"Please tell me your preferred date. You can say something like 'tomorrow', 'next Monday', or a specific date like 'December 15th'."

	dateRepromptMessage = "I'm sorry, I didn't understand that date. " +
		"Could you please repeat it? For example, say 'tomorrow', 'next Monday', or 'December 15th'."

	timeRepromptMessage = "I'm sorry, I didn't understand that time. " +
		"Could you please repeat it? For example, say '2 PM', '10:30 AM', or 'morning'."

	bookingRestartMessage = "No problem! Let's start over. What date would you prefer for your appointment?"

	lookupPromptMessage = "I can help you check your booking. " +
		"Please provide your booking ID, or say your full name if you don't have the ID."

	lookupMissMessage = "I'm sorry, I couldn't find a booking with that information. " +
		"Please double-check your booking ID or contact our support team. " +
		"Would you like me to transfer you to customer support? Say 'yes' or 'no'."

	supportMessage = "I'm connecting you to one of our customer support representatives. Please hold while I transfer your call. " +
		"I'm sorry, all our agents are currently busy. Please call back later or leave a message after the beep."

	paymentMessage = "For payment processing, I'll need to transfer you to our secure payment system. " +
		"Please have your payment information ready. Connecting you now... " +
		"Payment system is currently unavailable. Please try again later or contact support."

	reminderMessage = "I can help you set a reminder for your appointment. " +
		"This feature is currently being set up. " +
		"For now, please make a note of your appointment details. " +
		"Would you like to return to the main menu?"

	menuRepromptMessage = "Sorry, I didn't catch that. Could you please repeat your choice? " +
		"You can press a number on your keypad or speak your selection."
)

func greetingMessage(companyName string) string {
	return fmt.Sprintf("Hello! Welcome to %s. I'm your virtual assistant. Please choose from the following options: ", companyName) +
		`Press 1 or say "Book an appointment". ` +
		`Press 2 or say "Check my booking". ` +
		`Press 3 or say "Talk to customer support". ` +
		`Press 4 or say "Hear our working hours". ` +
		`Press 5 or say "Make a payment". ` +
		`Press 6 or say "Set a reminder".`
}

// workingHours lists open/close per day in spoken order. "closed" marks
// days without service.
var workingHours = []struct {
	day   string
	open  string
	close string
}{
	{"monday", "09:00", "17:00"},
	{"tuesday", "09:00", "17:00"},
	{"wednesday", "09:00", "17:00"},
	{"thursday", "09:00", "17:00"},
	{"friday", "09:00", "17:00"},
	{"saturday", "10:00", "14:00"},
	{"sunday", "closed", "closed"},
}

func workingHoursMessage() string {
	var sb strings.Builder
	sb.WriteString("Our working hours are: ")
	for _, wh := range workingHours {
		day := strings.ToUpper(wh.day[:1]) + wh.day[1:]
		if wh.open == "closed" {
			sb.WriteString(fmt.Sprintf("%s: Closed. ", day))
		} else {
			sb.WriteString(fmt.Sprintf("%s: %s to %s. ", day, wh.open, wh.close))
		}
	}
	sb.WriteString("Would you like to return to the main menu? Say 'yes' or 'main menu'.")
	return sb.String()
}
