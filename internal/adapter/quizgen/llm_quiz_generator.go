package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-forge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const quizPrompt = `Generate %d multiple-choice questions on %s.
Each question should have 4 options and 1 correct answer. Format:

1. Question?
   a) Option 1
   b) Option 2
   c) Option 3
   d) Option 4
   Answer: (correct option letter)
`

// LLMQuizGenerator implements domain.QuizGenerator with a langchaingo model.
type LLMQuizGenerator struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewLLMQuizGenerator wraps model. A zero timeout leaves the deadline to ctx.
func NewLLMQuizGenerator(model llms.Model, temperature float64, timeout time.Duration, logger *zap.Logger) (*LLMQuizGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("LLM model cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMQuizGenerator{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// BuildPrompt renders the generation prompt for source, which is either a
// topic name or text extracted from a document.
func BuildPrompt(source string, numQuestions int) string {
	return fmt.Sprintf(quizPrompt, numQuestions, source)
}

// Generate asks the model for numQuestions questions on source and returns the
// raw text. Provider errors and blank output both surface as GENERATION_FAILURE.
func (g *LLMQuizGenerator) Generate(ctx context.Context, source string, numQuestions int) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.logger.Info("Generating quiz with LLM",
		zap.Int("num_questions", numQuestions),
		zap.Int("source_len", len(source)))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.model, BuildPrompt(source, numQuestions), llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Error("LLM request timed out", zap.Error(err))
			return "", domain.NewGenerationFailureError(fmt.Errorf("LLM request timed out: %w", err))
		}
		g.logger.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewGenerationFailureError(fmt.Errorf("LLM call failed: %w", err))
	}

	cleaned := stripThinkBlock(raw)
	if cleaned == "" {
		g.logger.Warn("LLM returned empty quiz text", zap.Int("raw_len", len(raw)))
		return "", domain.NewGenerationFailureError(errors.New("LLM returned empty content"))
	}

	g.logger.Debug("Raw quiz text received", zap.String("raw_response", cleaned))
	return cleaned, nil
}

// stripThinkBlock removes a leading <think>...</think> section emitted by
// reasoning models and trims the rest.
func stripThinkBlock(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return strings.TrimSpace(s[:start] + s[end+len("</think>"):])
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
