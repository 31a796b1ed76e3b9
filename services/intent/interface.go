package intent

import (
	"context"

	"voicedesk/models"
)

// ContextMainMenu marks a turn where the caller is answering the main menu.
// The external classifier is only consulted for this context.
const ContextMainMenu = "menu"

// Classifier is the optional external collaborator that labels free-form
// input. The interpreter works without one, with degraded accuracy only.
type Classifier interface {
	ClassifyIntent(ctx context.Context, userInput string) (string, error)
}

// Interpreter turns raw caller input (a DTMF digit or a speech transcript)
// into a menu intent.
type Interpreter interface {
	Classify(ctx context.Context, rawInput, turnContext string) models.Intent
}
