package cache

import "strings"

const (
	GlobalKeyPrefix = "quizforge"

	quizService   = "quiz"
	sessionObject = "session"
)

// Key builds a colon separated key under GlobalKeyPrefix. Empty parts are skipped
// so an absent qualifier never produces "::".
func Key(parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, GlobalKeyPrefix)
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, ":")
}

// SessionKey is the key a quiz session record is stored under.
func SessionKey(sessionID string) string {
	return Key(quizService, sessionObject, sessionID)
}
