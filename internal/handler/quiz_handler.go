package handler

import (
	"io"
	"strconv"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions on a topic. Passing session_id of an existing session regenerates it and clears its answers.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz request"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateQuizFromDocument godoc
// @Summary Generate a quiz from a document
// @Description Extracts text from an uploaded PDF or text file and generates questions from it
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "Source document"
// @Param num_questions formData int false "Number of questions"
// @Param session_id formData string false "Session to regenerate"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quizzes/document [post]
func (h *QuizHandler) GenerateQuizFromDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return domain.NewInvalidInputError("document file is required")
	}

	numQuestions := 0
	if raw := strings.TrimSpace(c.FormValue("num_questions")); raw != "" {
		numQuestions, err = strconv.Atoi(raw)
		if err != nil {
			return domain.NewInvalidInputError("num_questions must be an integer")
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewExtractionFailureError("Failed to open uploaded document", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewExtractionFailureError("Failed to read uploaded document", err)
	}

	logger.Get().Debug("Received document",
		zap.String("name", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size))

	doc := domain.Document{
		Name:     fileHeader.Filename,
		MimeType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:     data,
	}
	resp, err := h.service.GenerateQuizFromDocument(c.UserContext(), doc, numQuestions, c.FormValue("session_id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get a quiz session
// @Description Returns the questions and recorded answers of a session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Record an answer
// @Description Records or overwrites the answer letter for one question. An empty letter clears the answer.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Question index"
// @Param request body dto.SubmitAnswerRequest true "Answer letter"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/answers/{index} [put]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return domain.NewInvalidInputError("index must be an integer")
	}

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.SubmitAnswer(c.UserContext(), c.Params("id"), index, strings.TrimSpace(req.Letter))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GradeSession godoc
// @Summary Grade a quiz session
// @Description Scores the current answers. Can be called any number of times.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ScoreResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/score [get]
func (h *QuizHandler) GradeSession(c *fiber.Ctx) error {
	resp, err := h.service.GradeSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteSession godoc
// @Summary Delete a quiz session
// @Tags quiz
// @Param id path string true "Session ID"
// @Success 204
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
