package intent

import (
	"context"
	"strings"
	"time"

	"voicedesk/models"

	"go.uber.org/zap"
)

// digitIntents maps single keypad digits to menu intents.
var digitIntents = map[string]models.Intent{
	"1": models.IntentBookAppointment,
	"2": models.IntentCheckBooking,
	"3": models.IntentCustomerSupport,
	"4": models.IntentWorkingHours,
	"5": models.IntentMakePayment,
	"6": models.IntentSetReminder,
	"9": models.IntentEnglish,
	"0": models.IntentSpanish,
}

// keywordIntents is scanned in order; the first intent with a matching
// keyword wins. check_booking sits before book_appointment because
// "booking" contains "book".
var keywordIntents = []struct {
	intent   models.Intent
	keywords []string
}{
	{models.IntentCheckBooking, []string{"check", "booking", "reservation", "my appointment", "find booking"}},
	{models.IntentBookAppointment, []string{"book", "appointment", "schedule", "reserve", "make appointment"}},
	{models.IntentCustomerSupport, []string{"support", "help", "agent", "human", "talk to someone", "representative"}},
	{models.IntentWorkingHours, []string{"hours", "open", "closed", "time", "when open", "business hours"}},
	{models.IntentMakePayment, []string{"payment", "pay", "bill", "invoice", "charge"}},
	{models.IntentSetReminder, []string{"reminder", "remind", "alert", "notification"}},
}

const classifierTimeout = 5 * time.Second

// DefaultInterpreter applies the rule passes in strict order: digit table,
// keyword table, then the external classifier as last resort.
type DefaultInterpreter struct {
	Classifier Classifier // optional
	Logger     *zap.Logger
}

func NewInterpreter(classifier Classifier, logger *zap.Logger) *DefaultInterpreter {
	return &DefaultInterpreter{Classifier: classifier, Logger: logger}
}

// Classify maps raw input to an intent. Empty input is unknown without
// consulting the classifier.
func (i *DefaultInterpreter) Classify(ctx context.Context, rawInput, turnContext string) models.Intent {
	input := strings.ToLower(strings.TrimSpace(rawInput))
	if input == "" {
		return models.IntentUnknown
	}

	if len(input) == 1 && input[0] >= '0' && input[0] <= '9' {
		if intent, ok := digitIntents[input]; ok {
			return intent
		}
	}

	for _, entry := range keywordIntents {
		for _, keyword := range entry.keywords {
			if strings.Contains(input, keyword) {
				return entry.intent
			}
		}
	}

	if i.Classifier != nil && turnContext == ContextMainMenu {
		cctx, cancel := context.WithTimeout(ctx, classifierTimeout)
		defer cancel()

		label, err := i.Classifier.ClassifyIntent(cctx, rawInput)
		if err != nil {
			i.Logger.Warn("intent classifier failed, treating input as unknown", zap.Error(err))
			return models.IntentUnknown
		}
		return models.ParseIntent(strings.ToLower(strings.TrimSpace(label)))
	}

	return models.IntentUnknown
}
