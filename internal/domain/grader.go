package domain

import "strings"

// UnknownLetter is reported for a question whose correct letter could not be parsed.
const UnknownLetter = "unknown"

// QuestionResult is the grading outcome for one question.
type QuestionResult struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	UserLetter    string `json:"user_letter"`
	CorrectLetter string `json:"correct_letter"`
	IsCorrect     bool   `json:"is_correct"`
}

// ScoreSummary is a freshly derived view of a session's answers.
// Total is zero for an empty session; callers computing a percentage must guard it.
type ScoreSummary struct {
	CorrectCount int              `json:"correct_count"`
	Total        int              `json:"total"`
	Results      []QuestionResult `json:"results"`
}

// IncorrectCount returns the number of questions not answered correctly,
// unanswered ones included.
func (s ScoreSummary) IncorrectCount() int {
	return s.Total - s.CorrectCount
}

// Grade derives a ScoreSummary from the session's current answers. It has no
// side effects and can be called any number of times.
func Grade(s *Session) ScoreSummary {
	summary := ScoreSummary{Results: []QuestionResult{}}
	if s == nil {
		return summary
	}

	summary.Total = len(s.questions)
	for i, q := range s.questions {
		user := s.answers[i]
		correct := strings.ToLower(q.CorrectLetter)

		result := QuestionResult{
			Index:         i,
			Prompt:        q.Prompt,
			UserLetter:    user,
			CorrectLetter: correct,
			IsCorrect:     user != "" && correct != "" && strings.ToLower(user) == correct,
		}
		if user == "" {
			result.UserLetter = Unanswered
		}
		if correct == "" {
			result.CorrectLetter = UnknownLetter
		}
		if result.IsCorrect {
			summary.CorrectCount++
		}
		summary.Results = append(summary.Results, result)
	}
	return summary
}
