package telephony

import (
	"strconv"

	"voicedesk/models"

	"github.com/twilio/twilio-go/twiml"
)

const (
	sayVoice    = "alice"
	sayLanguage = "en-US"

	defaultGatherTimeout = 5
	defaultNumDigits     = 1
	defaultSpeechTimeout = "auto"
)

// TwimlRenderer renders prompts as Twilio voice markup.
type TwimlRenderer struct{}

func NewTwimlRenderer() *TwimlRenderer {
	return &TwimlRenderer{}
}

// Render speaks the message, optionally inside a gather that collects the
// caller's next input, and optionally redirects the call afterwards.
func (r *TwimlRenderer) Render(message string, gather *models.Gather, redirectPath string) (string, error) {
	say := twiml.VoiceSay{
		Message:  message,
		Voice:    sayVoice,
		Language: sayLanguage,
	}

	var verbs []twiml.Element
	if gather != nil {
		input := gather.Input
		if input == "" {
			input = models.GatherBoth
		}
		timeout := gather.TimeoutSeconds
		if timeout == 0 {
			timeout = defaultGatherTimeout
		}
		numDigits := gather.NumDigits
		if numDigits == 0 {
			numDigits = defaultNumDigits
		}
		speechTimeout := gather.SpeechTimeout
		if speechTimeout == "" {
			speechTimeout = defaultSpeechTimeout
		}

		verbs = append(verbs, twiml.VoiceGather{
			Input:         input,
			Timeout:       strconv.Itoa(timeout),
			NumDigits:     strconv.Itoa(numDigits),
			Action:        gather.Action,
			Method:        "POST",
			SpeechTimeout: speechTimeout,
			InnerElements: []twiml.Element{say},
		})
	} else {
		verbs = append(verbs, say)
	}

	if redirectPath != "" {
		verbs = append(verbs, twiml.VoiceRedirect{Url: redirectPath})
	}

	return twiml.Voice(verbs)
}
