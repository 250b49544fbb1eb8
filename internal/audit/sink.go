// Package audit emits the structured audit trail for auth business
// events. Entries are regular zerolog lines tagged audit=true so they
// can be routed separately from operational logs.
package audit

import (
	"strings"

	"github.com/rs/zerolog"
)

// Sink consumes one audit event. The auth service calls it after every
// security-relevant state change.
type Sink func(action string, fields map[string]string)

// NewSink builds a Sink writing to the given logger. Failure actions
// are logged at warn level, everything else at info. Email addresses
// are masked before they reach the log stream.
func NewSink(log zerolog.Logger) Sink {
	al := log.With().Bool("audit", true).Logger()
	return func(action string, fields map[string]string) {
		evt := al.Info()
		if strings.HasSuffix(action, "_failed") {
			evt = al.Warn()
		}
		evt = evt.Str("action", action)
		for k, v := range fields {
			if k == "email" {
				v = maskEmail(v)
			}
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	}
}

// maskEmail keeps at most the first two characters of the local part.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 || len(email) < 5 {
		return "***"
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
