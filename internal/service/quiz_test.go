package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const twoQuestionQuiz = "1. What is 2+2?\na) 3\nb) 4\nc) 5\nd) 6\nAnswer: b\n2. Capital of France?\na) Rome\nb) Paris\nc) Berlin\nd) Madrid\nAnswer: b"

var testQuizConfig = config.QuizConfig{
	MinQuestions:     1,
	MaxQuestions:     20,
	DefaultQuestions: 5,
	SessionTTL:       time.Hour,
}

func newTestService(gen *MockQuizGenerator, ext *MockTextExtractor) (*quizService, *repository.MemorySessionRepository) {
	repo := repository.NewMemorySessionRepository()
	var extractor domain.TextExtractor
	if ext != nil {
		extractor = ext
	}
	svc := NewQuizService(gen, extractor, repo, testQuizConfig, nil).(*quizService)
	svc.newID = func() string { return "01J9Z3NDEKTSV4RRFFQ69G5FAV" }
	return svc, repo
}

func TestGenerateQuiz_CreatesSession(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil)
	svc, repo := newTestService(gen, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Topic: "  math ", NumQuestions: 2})

	require.NoError(t, err)
	assert.Equal(t, "01J9Z3NDEKTSV4RRFFQ69G5FAV", resp.SessionID)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "What is 2+2?", resp.Questions[0].Prompt)
	assert.Equal(t, []dto.OptionResponse{
		{Letter: "a", Label: "3"}, {Letter: "b", Label: "4"}, {Letter: "c", Label: "5"}, {Letter: "d", Label: "6"},
	}, resp.Questions[0].Options)
	assert.Equal(t, domain.Unanswered, resp.Questions[1].Answer)
	assert.False(t, resp.Questions[0].Malformed)
	assert.Equal(t, string(domain.DisplayInProgress), resp.DisplayState)

	stored, err := repo.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Session.QuestionCount())
	gen.AssertExpectations(t)
}

func TestGenerateQuiz_DefaultCount(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "go", 5).Return(twoQuestionQuiz, nil)
	svc, _ := newTestService(gen, nil)

	_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Topic: "go"})

	require.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestGenerateQuiz_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.GenerateQuizRequest
	}{
		{"nil request", nil},
		{"blank topic", &dto.GenerateQuizRequest{Topic: "   ", NumQuestions: 2}},
		{"too many", &dto.GenerateQuizRequest{Topic: "go", NumQuestions: 21}},
		{"negative", &dto.GenerateQuizRequest{Topic: "go", NumQuestions: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockQuizGenerator)
			svc, _ := newTestService(gen, nil)

			resp, err := svc.GenerateQuiz(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateQuiz_GenerationFailureLeavesSessionUntouched(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil).Once()
	gen.On("Generate", mock.Anything, "math", 2).Return("", errors.New("connection refused")).Once()
	svc, repo := newTestService(gen, nil)
	ctx := context.Background()

	first, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, first.SessionID, 0, "b")
	require.NoError(t, err)

	resp, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2, SessionID: first.SessionID})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
	stored, err := repo.Get(ctx, first.SessionID)
	require.NoError(t, err)
	answer, _ := stored.Session.CurrentAnswer(0)
	assert.Equal(t, "b", answer)
}

func TestGenerateQuiz_EmptyOutputIsGenerationFailure(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 1).Return("  \n", nil)
	svc, _ := newTestService(gen, nil)

	_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 1})

	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
}

func TestGenerateQuiz_RegenerateClearsAnswers(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil)
	svc, _ := newTestService(gen, nil)
	ctx := context.Background()

	first, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, first.SessionID, 0, "b")
	require.NoError(t, err)
	_, err = svc.GradeSession(ctx, first.SessionID)
	require.NoError(t, err)

	again, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2, SessionID: first.SessionID})

	require.NoError(t, err)
	assert.Equal(t, first.SessionID, again.SessionID)
	assert.Equal(t, 0, again.AnsweredCount)
	assert.Equal(t, string(domain.DisplayInProgress), again.DisplayState)
	assert.False(t, again.ResultsStale)
}

func TestGenerateQuiz_UnknownSessionIDStartsNewSession(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil)
	svc, _ := newTestService(gen, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2, SessionID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})

	require.NoError(t, err)
	assert.Equal(t, "01J9Z3NDEKTSV4RRFFQ69G5FAV", resp.SessionID)
}

func TestGenerateQuiz_SessionIDMustBeULID(t *testing.T) {
	gen := new(MockQuizGenerator)
	svc, _ := newTestService(gen, nil)

	_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2, SessionID: "not-a-ulid"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuiz_MalformedQuestionsAreFlagged(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return("1. No options\nAnswer: a\n2. Fine?\na) yes\nb) no\nAnswer: a", nil)
	svc, _ := newTestService(gen, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2})

	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.True(t, resp.Questions[0].Malformed)
	assert.NotEmpty(t, resp.Questions[0].Problem)
	assert.Empty(t, resp.Questions[0].Options)
	assert.False(t, resp.Questions[1].Malformed)
}

func TestGenerateQuizFromDocument(t *testing.T) {
	doc := domain.Document{Name: "notes.txt", MimeType: "text/plain", Data: []byte("photosynthesis notes")}

	t.Run("uses extracted text as source", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		ext := new(MockTextExtractor)
		ext.On("Extract", mock.Anything, doc).Return("photosynthesis notes", nil)
		gen.On("Generate", mock.Anything, "photosynthesis notes", 2).Return(twoQuestionQuiz, nil)
		svc, _ := newTestService(gen, ext)

		resp, err := svc.GenerateQuizFromDocument(context.Background(), doc, 2, "")

		require.NoError(t, err)
		assert.Len(t, resp.Questions, 2)
		ext.AssertExpectations(t)
		gen.AssertExpectations(t)
	})

	t.Run("extraction failure", func(t *testing.T) {
		gen := new(MockQuizGenerator)
		ext := new(MockTextExtractor)
		ext.On("Extract", mock.Anything, doc).Return("", errors.New("corrupt"))
		svc, _ := newTestService(gen, ext)

		_, err := svc.GenerateQuizFromDocument(context.Background(), doc, 2, "")

		assert.ErrorIs(t, err, domain.ErrExtractionFailure)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("extractor not configured", func(t *testing.T) {
		svc, _ := newTestService(new(MockQuizGenerator), nil)

		_, err := svc.GenerateQuizFromDocument(context.Background(), doc, 2, "")

		assert.Error(t, err)
	})
}

func TestSubmitAnswer(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil)
	svc, _ := newTestService(gen, nil)
	ctx := context.Background()
	session, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2})
	require.NoError(t, err)

	t.Run("records answer", func(t *testing.T) {
		resp, err := svc.SubmitAnswer(ctx, session.SessionID, 1, "c")
		require.NoError(t, err)
		assert.Equal(t, "c", resp.Letter)
		assert.False(t, resp.ResultsStale)

		got, err := svc.GetSession(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "c", got.Questions[1].Answer)
		assert.Equal(t, 1, got.AnsweredCount)
	})

	t.Run("rejects more than one character", func(t *testing.T) {
		for _, letter := range []string{"paris", "unanswered", "ab"} {
			_, err := svc.SubmitAnswer(ctx, session.SessionID, 0, letter)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, letter)
		}
		got, err := svc.GetSession(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.Unanswered, got.Questions[0].Answer)
	})

	t.Run("empty letter clears", func(t *testing.T) {
		_, err := svc.SubmitAnswer(ctx, session.SessionID, 1, "")
		require.NoError(t, err)
		got, err := svc.GetSession(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.Unanswered, got.Questions[1].Answer)
		assert.Equal(t, 0, got.AnsweredCount)
	})

	t.Run("out of range index", func(t *testing.T) {
		_, err := svc.SubmitAnswer(ctx, session.SessionID, 2, "a")
		assert.ErrorIs(t, err, domain.ErrInvalidIndex)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.SubmitAnswer(ctx, "missing", 0, "a")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestGradeSession_ScenarioAndStaleness(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil)
	svc, _ := newTestService(gen, nil)
	ctx := context.Background()
	session, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, session.SessionID, 0, "b")
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, session.SessionID, 1, "c")
	require.NoError(t, err)

	score, err := svc.GradeSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, score.CorrectCount)
	assert.Equal(t, 1, score.IncorrectCount)
	assert.Equal(t, 2, score.Total)
	assert.Equal(t, 50.0, score.CorrectPercent)
	assert.Equal(t, 50.0, score.IncorrectPercent)
	require.Len(t, score.Results, 2)
	assert.True(t, score.Results[0].IsCorrect)
	assert.Equal(t, "c", score.Results[1].UserLetter)
	assert.Equal(t, "b", score.Results[1].CorrectLetter)

	answer, err := svc.SubmitAnswer(ctx, session.SessionID, 1, "b")
	require.NoError(t, err)
	assert.True(t, answer.ResultsStale)

	score, err = svc.GradeSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, score.CorrectCount)
	assert.Equal(t, 100.0, score.CorrectPercent)

	got, err := svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DisplayDisplayed), got.DisplayState)
	assert.False(t, got.ResultsStale)
}

func TestGradeSession_EmptyQuizReportsZeroPercent(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 1).Return("Sorry, I cannot help with that.", nil)
	svc, _ := newTestService(gen, nil)
	ctx := context.Background()
	session, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 1})
	require.NoError(t, err)
	assert.Empty(t, session.Questions)

	score, err := svc.GradeSession(ctx, session.SessionID)

	require.NoError(t, err)
	assert.Equal(t, 0, score.Total)
	assert.Equal(t, 0.0, score.CorrectPercent)
	assert.NotNil(t, score.Results)
}

func TestDeleteSession(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("Generate", mock.Anything, "math", 2).Return(twoQuestionQuiz, nil)
	svc, _ := newTestService(gen, nil)
	ctx := context.Background()
	session, err := svc.GenerateQuiz(ctx, &dto.GenerateQuizRequest{Topic: "math", NumQuestions: 2})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, session.SessionID))

	_, err = svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 33.3, percent(1, 3))
	assert.Equal(t, 66.7, percent(2, 3))
	assert.Equal(t, 16.7, percent(1, 6))
	assert.Equal(t, 100.0, percent(4, 4))
}
