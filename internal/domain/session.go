package domain

import "encoding/json"

// Unanswered is reported for a question without a recorded answer.
const Unanswered = "unanswered"

// Session holds a fixed question list and one answer slot per question.
// An empty slot means the question is unanswered. A session is not safe for
// concurrent use; callers own one interaction at a time.
type Session struct {
	ID        string
	questions []QuizQuestion
	answers   []string
}

// NewSession creates a session over questions with no recorded answers.
func NewSession(questions []QuizQuestion) *Session {
	s := &Session{}
	s.reset(questions)
	return s
}

// Regenerate replaces the question list and clears every recorded answer.
// Answers from the previous question set never carry over.
func (s *Session) Regenerate(questions []QuizQuestion) {
	s.reset(questions)
}

func (s *Session) reset(questions []QuizQuestion) {
	s.questions = cloneQuestions(questions)
	s.answers = make([]string, len(questions))
}

// QuestionCount returns the number of questions in the session.
func (s *Session) QuestionCount() int {
	return len(s.questions)
}

// Questions returns a deep copy of the question list.
func (s *Session) Questions() []QuizQuestion {
	return cloneQuestions(s.questions)
}

func cloneQuestions(questions []QuizQuestion) []QuizQuestion {
	out := make([]QuizQuestion, len(questions))
	for i, q := range questions {
		q.Options = cloneOptions(q.Options)
		out[i] = q
	}
	return out
}

func cloneOptions(options []string) []string {
	if options == nil {
		return nil
	}
	return append(make([]string, 0, len(options)), options...)
}

// Question returns the question at index.
func (s *Session) Question(index int) (QuizQuestion, error) {
	if err := s.checkIndex(index); err != nil {
		return QuizQuestion{}, err
	}
	q := s.questions[index]
	q.Options = cloneOptions(q.Options)
	return q, nil
}

// SetAnswer records or overwrites the answer for index. Answers are never
// frozen, grading does not lock the session.
func (s *Session) SetAnswer(index int, letter string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.answers[index] = letter
	return nil
}

// ClearAnswer removes the recorded answer for index.
func (s *Session) ClearAnswer(index int) error {
	return s.SetAnswer(index, "")
}

// CurrentAnswer returns the recorded letter for index or Unanswered.
func (s *Session) CurrentAnswer(index int) (string, error) {
	if err := s.checkIndex(index); err != nil {
		return "", err
	}
	if s.answers[index] == "" {
		return Unanswered, nil
	}
	return s.answers[index], nil
}

// AnsweredCount returns how many questions have a recorded answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, a := range s.answers {
		if a != "" {
			n++
		}
	}
	return n
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.questions) {
		return NewInvalidIndexError(index, len(s.questions))
	}
	return nil
}

type sessionJSON struct {
	ID        string         `json:"id"`
	Questions []QuizQuestion `json:"questions"`
	Answers   []string       `json:"answers"`
}

// MarshalJSON implements the json.Marshaler interface
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		ID:        s.ID,
		Questions: s.questions,
		Answers:   s.answers,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface. The answer slice is
// resized to the question count so index addressing stays valid.
func (s *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.reset(raw.Questions)
	copy(s.answers, raw.Answers)
	return nil
}
