package service

import (
	"context"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) Generate(ctx context.Context, source string, numQuestions int) (string, error) {
	args := m.Called(ctx, source, numQuestions)
	return args.String(0), args.Error(1)
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, doc domain.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}
