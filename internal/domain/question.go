package domain

import (
	"strings"
	"unicode/utf8"
)

const optionSeparator = ") "

// QuizQuestion is one parsed multiple-choice item.
// Options hold the raw option lines exactly as generated, e.g. "b) Paris".
type QuizQuestion struct {
	Index         int      `json:"index"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectLetter string   `json:"correct_letter"`
}

// Option is a raw option line split into its letter and label.
type Option struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
}

// SplitOption splits a raw option on the first ") ".
// The letter is the lower-cased leading character of the raw line.
func SplitOption(raw string) (Option, bool) {
	i := strings.Index(raw, optionSeparator)
	if i < 0 {
		return Option{}, false
	}
	return Option{
		Letter: FirstLetter(raw),
		Label:  raw[i+len(optionSeparator):],
	}, true
}

// ParseOptions splits every raw option of the question. A raw option without
// the ") " separator makes the whole question malformed.
func (q QuizQuestion) ParseOptions() ([]Option, error) {
	opts := make([]Option, 0, len(q.Options))
	for _, raw := range q.Options {
		opt, ok := SplitOption(raw)
		if !ok {
			return nil, NewMalformedQuestionError(q.Index, "option "+quote(raw)+" has no \") \" separator")
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// Validate reports MalformedQuestion when the question has no options or no
// correct letter. Such questions are still presented; they just can't be
// answered correctly.
func (q QuizQuestion) Validate() error {
	if len(q.Options) == 0 {
		return NewMalformedQuestionError(q.Index, "no options")
	}
	if q.CorrectLetter == "" {
		return NewMalformedQuestionError(q.Index, "no correct letter")
	}
	if _, err := q.ParseOptions(); err != nil {
		return err
	}
	return nil
}

// FirstLetter returns the lower-cased first character of s, or "" for an empty string.
func FirstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return strings.ToLower(string(r))
}

func quote(s string) string {
	return "\"" + s + "\""
}
