package dto

// GenerateQuizRequest asks for a new quiz on a topic.
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	// SessionID, when set to an existing session, regenerates that session in place.
	SessionID string `json:"session_id,omitempty"`
}

// SubmitAnswerRequest records an answer letter for one question.
type SubmitAnswerRequest struct {
	Letter string `json:"letter"`
}

// OptionResponse is one selectable option of a question.
type OptionResponse struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
}

// QuestionResponse is a question as presented to the client.
// Malformed questions are still returned; their options may be empty.
type QuestionResponse struct {
	Index     int              `json:"index"`
	Prompt    string           `json:"prompt"`
	Options   []OptionResponse `json:"options"`
	Answer    string           `json:"answer"`
	Malformed bool             `json:"malformed"`
	Problem   string           `json:"problem,omitempty"`
}

// QuizSessionResponse is the current state of a quiz session.
// @Description Quiz session with questions and recorded answers
type QuizSessionResponse struct {
	SessionID     string             `json:"session_id"`
	Questions     []QuestionResponse `json:"questions"`
	AnsweredCount int                `json:"answered_count"`
	DisplayState  string             `json:"display_state"`
	ResultsStale  bool               `json:"results_stale"`
}

// AnswerResponse confirms a recorded answer.
type AnswerResponse struct {
	SessionID    string `json:"session_id"`
	Index        int    `json:"index"`
	Letter       string `json:"letter"`
	ResultsStale bool   `json:"results_stale"`
}

// QuestionResultResponse is the grading outcome for one question.
type QuestionResultResponse struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	UserLetter    string `json:"user_letter"`
	CorrectLetter string `json:"correct_letter"`
	IsCorrect     bool   `json:"is_correct"`
}

// ScoreResponse is a graded session.
// @Description Score summary of a quiz session
type ScoreResponse struct {
	SessionID        string                   `json:"session_id"`
	CorrectCount     int                      `json:"correct_count"`
	IncorrectCount   int                      `json:"incorrect_count"`
	Total            int                      `json:"total"`
	CorrectPercent   float64                  `json:"correct_percent"`
	IncorrectPercent float64                  `json:"incorrect_percent"`
	Results          []QuestionResultResponse `json:"results"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
