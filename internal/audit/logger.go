package audit

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Logger writes structured audit records for account events.
type Logger struct {
	log zerolog.Logger
}

// New creates a new audit logger
func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Record writes one audit line. Failed actions (result=error) are logged at warn level.
// Email addresses are masked before they reach the log.
func (l *Logger) Record(action string, fields map[string]string) {
	evt := l.log.Info()
	if fields["result"] == "error" {
		evt = l.log.Warn()
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

// Hook adapts the logger to the account service's audit callback.
func (l *Logger) Hook() func(action string, fields map[string]string) {
	return l.Record
}

// maskEmail keeps the first two characters of the local part and the domain.
func maskEmail(email string) string {
	if utf8.RuneCountInString(email) < 5 {
		return "***"
	}
	local, domain := email, ""
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local, domain = email[:at], email[at:]
	}
	keep := []rune(local)
	switch {
	case len(keep) >= 2 || domain == "":
		keep = keep[:min(2, len(keep))]
	default:
		keep = keep[:min(1, len(keep))]
	}
	return string(keep) + "***" + domain
}
