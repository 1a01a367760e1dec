package service

import (
	"math"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

func toSessionResponse(record *domain.SessionRecord) *dto.QuizSessionResponse {
	session := record.Session
	questions := session.Questions()

	resp := &dto.QuizSessionResponse{
		SessionID:     session.ID,
		Questions:     make([]dto.QuestionResponse, 0, len(questions)),
		AnsweredCount: session.AnsweredCount(),
		DisplayState:  string(record.Display.State),
		ResultsStale:  record.Display.Stale,
	}

	for i, q := range questions {
		answer, _ := session.CurrentAnswer(i)
		qr := dto.QuestionResponse{
			Index:   i,
			Prompt:  q.Prompt,
			Options: []dto.OptionResponse{},
			Answer:  answer,
		}
		if err := q.Validate(); err != nil {
			qr.Malformed = true
			qr.Problem = err.Error()
		}
		if opts, err := q.ParseOptions(); err == nil {
			for _, o := range opts {
				qr.Options = append(qr.Options, dto.OptionResponse{Letter: o.Letter, Label: o.Label})
			}
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}

func toScoreResponse(sessionID string, summary domain.ScoreSummary) *dto.ScoreResponse {
	resp := &dto.ScoreResponse{
		SessionID:      sessionID,
		CorrectCount:   summary.CorrectCount,
		IncorrectCount: summary.IncorrectCount(),
		Total:          summary.Total,
		Results:        make([]dto.QuestionResultResponse, 0, len(summary.Results)),
	}
	// Grade never divides; an empty quiz reports 0%.
	if summary.Total > 0 {
		resp.CorrectPercent = percent(summary.CorrectCount, summary.Total)
		resp.IncorrectPercent = percent(summary.IncorrectCount(), summary.Total)
	}
	for _, r := range summary.Results {
		resp.Results = append(resp.Results, dto.QuestionResultResponse{
			Index:         r.Index,
			Prompt:        r.Prompt,
			UserLetter:    r.UserLetter,
			CorrectLetter: r.CorrectLetter,
			IsCorrect:     r.IsCorrect,
		})
	}
	return resp
}

// percent rounds to one decimal place.
func percent(part, total int) float64 {
	return math.Round(float64(part)*1000/float64(total)) / 10
}
