// Package parser turns raw generated quiz text into questions.
//
// The expected shape is
//
//	1. Question?
//	a) Option 1
//	b) Option 2
//	c) Option 3
//	d) Option 4
//	Answer: b
//
// Parsing is permissive: unknown lines are ignored, options or answers seen
// before any question are dropped, and a question missing options or an
// answer is still emitted. Validation is left to QuizQuestion.Validate.
package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"quiz-forge/internal/domain"
)

var optionPrefixes = []string{"a)", "b)", "c)", "d)"}

const answerPrefix = "answer:"

// accumulator is the scan state: idle, or building one question.
type accumulator interface {
	// finalize appends the question being built, if any, to out.
	finalize(out []domain.QuizQuestion) []domain.QuizQuestion
}

type idle struct{}

func (idle) finalize(out []domain.QuizQuestion) []domain.QuizQuestion {
	return out
}

type building struct {
	question domain.QuizQuestion
}

func (b *building) finalize(out []domain.QuizQuestion) []domain.QuizQuestion {
	q := b.question
	q.Index = len(out)
	if q.Options == nil {
		q.Options = []string{}
	}
	return append(out, q)
}

// Parse converts raw quiz text into an ordered list of questions. It never fails.
func Parse(raw string) []domain.QuizQuestion {
	questions := []domain.QuizQuestion{}
	var state accumulator = idle{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isQuestionStart(line):
			questions = state.finalize(questions)
			state = &building{question: domain.QuizQuestion{Prompt: promptOf(line)}}

		case isOption(line):
			if b, ok := state.(*building); ok {
				b.question.Options = append(b.question.Options, line)
			}

		case isAnswer(line):
			if b, ok := state.(*building); ok {
				b.question.CorrectLetter = answerLetter(line)
			}
		}
	}
	return state.finalize(questions)
}

// isQuestionStart matches lines such as "3. What is ...": a leading digit and a period anywhere.
func isQuestionStart(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsDigit(r) && strings.Contains(line, ".")
}

// promptOf drops the "N. " prefix. Without a ". " the line is kept whole,
// numeral included.
func promptOf(line string) string {
	if _, after, found := strings.Cut(line, ". "); found {
		return after
	}
	return line
}

func isOption(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range optionPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func isAnswer(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), answerPrefix)
}

// answerLetter takes the text after the last colon, e.g. "Answer: (B)" yields "(".
func answerLetter(line string) string {
	rest := line[strings.LastIndex(line, ":")+1:]
	return domain.FirstLetter(strings.TrimSpace(rest))
}
