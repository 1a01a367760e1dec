package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the quiz API under /api and the health check at /health.
func RegisterRoutes(app *fiber.App, quiz *QuizHandler, health *HealthHandler) {
	app.Get("/health", health.Health)

	api := app.Group("/api")
	quizzes := api.Group("/quizzes")
	quizzes.Post("/", quiz.GenerateQuiz)
	quizzes.Post("/document", quiz.GenerateQuizFromDocument)
	quizzes.Get("/:id", quiz.GetSession)
	quizzes.Delete("/:id", quiz.DeleteSession)
	quizzes.Put("/:id/answers/:index", quiz.SubmitAnswer)
	quizzes.Get("/:id/score", quiz.GradeSession)
}
