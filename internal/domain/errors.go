package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Quiz specific errors
	CodeInvalidIndex      ErrorCode = "INVALID_INDEX"
	CodeGenerationFailure ErrorCode = "GENERATION_FAILURE"
	CodeMalformedQuestion ErrorCode = "MALFORMED_QUESTION"
	CodeExtractionFailure ErrorCode = "EXTRACTION_FAILURE"
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
)

// Sentinels for errors.Is matching. Any DomainError with the same code matches.
var (
	ErrInvalidIndex      = &DomainError{Code: CodeInvalidIndex}
	ErrGenerationFailure = &DomainError{Code: CodeGenerationFailure}
	ErrMalformedQuestion = &DomainError{Code: CodeMalformedQuestion}
	ErrExtractionFailure = &DomainError{Code: CodeExtractionFailure}
	ErrSessionNotFound   = &DomainError{Code: CodeSessionNotFound}
	ErrInvalidInput      = &DomainError{Code: CodeInvalidInput}
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidIndexError(index, count int) *DomainError {
	return NewError(CodeInvalidIndex, fmt.Sprintf("question index %d out of range [0, %d)", index, count), nil)
}

func NewGenerationFailureError(err error) *DomainError {
	return NewError(CodeGenerationFailure, "Failed to generate quiz content", err)
}

func NewMalformedQuestionError(index int, reason string) *DomainError {
	return NewError(CodeMalformedQuestion, fmt.Sprintf("question %d is malformed: %s", index, reason), nil)
}

func NewExtractionFailureError(message string, err error) *DomainError {
	return NewError(CodeExtractionFailure, message, err)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Quiz session not found with ID: %s", sessionID), nil)
}
