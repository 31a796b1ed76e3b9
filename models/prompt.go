package models

// Gather describes the input the telephony layer should collect after a
// prompt is spoken: keypad digits, speech, or both.
type Gather struct {
	Input          string // "dtmf", "speech" or "dtmf speech"
	TimeoutSeconds int
	NumDigits      int
	Action         string // webhook path the next turn is posted to
	SpeechTimeout  string // e.g. "auto"
}

// Gather input kinds.
const (
	GatherDigits = "dtmf"
	GatherSpeech = "speech"
	GatherBoth   = "dtmf speech"
)
