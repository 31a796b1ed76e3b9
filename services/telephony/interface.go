package telephony

import "voicedesk/models"

// Renderer produces the opaque markup document the telephony provider plays
// to the caller. The dialog engine passes the result upward unchanged.
type Renderer interface {
	Render(message string, gather *models.Gather, redirectPath string) (string, error)
}
