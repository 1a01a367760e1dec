package domain

import (
	"context"
	"time"
)

// QuizGenerator produces raw quiz text for a topic or a block of source text.
// It either returns the whole text or fails; retry policy belongs to the implementation.
type QuizGenerator interface {
	Generate(ctx context.Context, source string, numQuestions int) (string, error)
}

// Document is an uploaded file to be turned into quiz source text.
type Document struct {
	Name     string
	MimeType string
	Data     []byte
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// SessionRepository stores quiz sessions by ID.
// Get returns a SESSION_NOT_FOUND error for unknown IDs.
type SessionRepository interface {
	Save(ctx context.Context, record *SessionRecord, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}
