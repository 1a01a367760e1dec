package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/parser"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizSessionResponse, error)
	GenerateQuizFromDocument(ctx context.Context, doc domain.Document, numQuestions int, sessionID string) (*dto.QuizSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, index int, letter string) (*dto.AnswerResponse, error)
	GradeSession(ctx context.Context, sessionID string) (*dto.ScoreResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type quizService struct {
	generator domain.QuizGenerator
	extractor domain.TextExtractor
	repo      domain.SessionRepository
	quizCfg   config.QuizConfig
	logger    *zap.Logger
	newID     func() string
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	generator domain.QuizGenerator,
	extractor domain.TextExtractor,
	repo domain.SessionRepository,
	quizCfg config.QuizConfig,
	logger *zap.Logger,
) QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &quizService{
		generator: generator,
		extractor: extractor,
		repo:      repo,
		quizCfg:   quizCfg,
		logger:    logger,
		newID:     util.NewULID,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizSessionResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	return s.generate(ctx, topic, req.NumQuestions, req.SessionID)
}

// GenerateQuizFromDocument implements QuizService. The extracted document text
// takes the place of the topic.
func (s *quizService) GenerateQuizFromDocument(ctx context.Context, doc domain.Document, numQuestions int, sessionID string) (*dto.QuizSessionResponse, error) {
	if s.extractor == nil {
		return nil, domain.NewInternalError("document extraction is not configured", nil)
	}
	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewExtractionFailureError("Failed to extract document text", err)
	}
	s.logger.Info("Extracted document text",
		zap.String("name", doc.Name),
		zap.Int("text_len", len(text)))
	return s.generate(ctx, text, numQuestions, sessionID)
}

func (s *quizService) generate(ctx context.Context, source string, numQuestions int, sessionID string) (*dto.QuizSessionResponse, error) {
	count, err := s.questionCount(numQuestions)
	if err != nil {
		return nil, err
	}
	if sessionID != "" && !util.IsULID(sessionID) {
		return nil, domain.NewInvalidInputError("session_id must be a ULID")
	}

	raw, err := s.generator.Generate(ctx, source, count)
	if err != nil {
		s.logger.Error("Quiz generation failed", zap.Error(err))
		if errors.Is(err, domain.ErrGenerationFailure) {
			return nil, err
		}
		return nil, domain.NewGenerationFailureError(err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewGenerationFailureError(errors.New("generator returned empty content"))
	}

	questions := parser.Parse(raw)
	for _, q := range questions {
		if verr := q.Validate(); verr != nil {
			s.logger.Warn("Generated question is malformed", zap.Int("index", q.Index), zap.Error(verr))
		}
	}
	if len(questions) != count {
		s.logger.Warn("Parsed question count differs from requested",
			zap.Int("requested", count),
			zap.Int("parsed", len(questions)))
	}

	record, err := s.sessionFor(ctx, sessionID, questions)
	if err != nil {
		return nil, err
	}
	record.Display = record.Display.Regenerated()

	if err := s.repo.Save(ctx, record, s.quizCfg.SessionTTL); err != nil {
		return nil, err
	}

	s.logger.Info("Quiz session ready",
		zap.String("session_id", record.Session.ID),
		zap.Int("questions", len(questions)))
	return toSessionResponse(record), nil
}

// sessionFor regenerates the named session when it exists, otherwise starts a new one.
func (s *quizService) sessionFor(ctx context.Context, sessionID string, questions []domain.QuizQuestion) (*domain.SessionRecord, error) {
	if sessionID != "" {
		record, err := s.repo.Get(ctx, sessionID)
		switch {
		case err == nil:
			record.Session.Regenerate(questions)
			return record, nil
		case !errors.Is(err, domain.ErrSessionNotFound):
			return nil, err
		}
		s.logger.Debug("Session to regenerate not found, starting a new one", zap.String("session_id", sessionID))
	}

	session := domain.NewSession(questions)
	session.ID = s.newID()
	return &domain.SessionRecord{Session: session, Display: domain.Display{State: domain.DisplayEmpty}}, nil
}

func (s *quizService) questionCount(n int) (int, error) {
	if n == 0 {
		return s.quizCfg.DefaultQuestions, nil
	}
	if n < s.quizCfg.MinQuestions || n > s.quizCfg.MaxQuestions {
		return 0, domain.NewInvalidInputError(fmt.Sprintf("num_questions must be between %d and %d",
			s.quizCfg.MinQuestions, s.quizCfg.MaxQuestions))
	}
	return n, nil
}

// GetSession implements QuizService
func (s *quizService) GetSession(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error) {
	record, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(record), nil
}

// SubmitAnswer implements QuizService. Answers may change after grading; the
// last score is then reported as stale.
func (s *quizService) SubmitAnswer(ctx context.Context, sessionID string, index int, letter string) (*dto.AnswerResponse, error) {
	// a single letter, or "" to clear
	if utf8.RuneCountInString(letter) > 1 {
		return nil, domain.NewInvalidInputError("letter must be a single character")
	}
	record, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := record.Session.SetAnswer(index, letter); err != nil {
		return nil, err
	}
	record.Display = record.Display.Answered()

	if err := s.repo.Save(ctx, record, s.quizCfg.SessionTTL); err != nil {
		return nil, err
	}
	return &dto.AnswerResponse{
		SessionID:    sessionID,
		Index:        index,
		Letter:       letter,
		ResultsStale: record.Display.Stale,
	}, nil
}

// GradeSession implements QuizService
func (s *quizService) GradeSession(ctx context.Context, sessionID string) (*dto.ScoreResponse, error) {
	record, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := domain.Grade(record.Session)
	record.Display = record.Display.Graded()
	if err := s.repo.Save(ctx, record, s.quizCfg.SessionTTL); err != nil {
		// display state is best effort; the score itself is complete
		s.logger.Warn("Failed to persist display state after grading", zap.String("session_id", sessionID), zap.Error(err))
	}

	s.logger.Info("Quiz graded",
		zap.String("session_id", sessionID),
		zap.Int("correct", summary.CorrectCount),
		zap.Int("total", summary.Total))
	return toScoreResponse(sessionID, summary), nil
}

// DeleteSession implements QuizService
func (s *quizService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
