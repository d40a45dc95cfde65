package domain

import "time"

// QuestionType discriminates how a question is answered and scored.
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	FreeText       QuestionType = "free_text"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, FreeText:
		return true
	}
	return false
}

// Option represents a possible answer for a choice question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

// Question is a single prompt. Choice questions carry options; free-text
// questions carry accepted answers instead.
type Question struct {
	ID              string       `json:"id"`
	Text            string       `json:"text"`
	Type            QuestionType `json:"type"`
	Options         []Option     `json:"options,omitempty"`
	AcceptedAnswers []string     `json:"accepted_answers,omitempty"`
	Points          int          `json:"points"` // defaults to 1 at creation
}

// CorrectOptionIDs returns the IDs of the options flagged correct, in option order.
func (q Question) CorrectOptionIDs() []string {
	ids := make([]string, 0, 1)
	for _, opt := range q.Options {
		if opt.Correct {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// Quiz is a titled collection of questions. Immutable after creation.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Answer is one response inside a submission. Choice questions use
// SelectedOptionIDs; free-text questions use Text.
type Answer struct {
	QuestionID        string   `json:"question_id"`
	SelectedOptionIDs []string `json:"selected_option_ids,omitempty"`
	Text              string   `json:"text,omitempty"`
}

// Submission is a scored set of answers to a quiz. Immutable after creation.
type Submission struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quiz_id"`
	Answers   []Answer  `json:"answers"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicOption is an option with correctness stripped.
type PublicOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PublicQuestion is the user-facing projection of a question.
type PublicQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Type    QuestionType   `json:"type"`
	Options []PublicOption `json:"options,omitempty"`
	Points  int            `json:"points"`
}

// PublicQuiz is the user-facing projection of a quiz. It never carries
// correctness data.
type PublicQuiz struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Questions   []PublicQuestion `json:"questions"`
	TotalPoints int              `json:"total_points"`
}

// QuestionResult is the per-question outcome of scoring. Computed, not persisted.
type QuestionResult struct {
	QuestionID       string   `json:"question_id"`
	Correct          bool     `json:"correct"`
	EarnedPoints     int      `json:"earned_points"`
	MaxPoints        int      `json:"max_points"`
	CorrectOptionIDs []string `json:"correct_option_ids"`
	AcceptedAnswers  []string `json:"accepted_answers,omitempty"`
}

// SubmissionResult aggregates scoring across a submission. MaxScore counts
// only the questions that were actually answered.
type SubmissionResult struct {
	QuizID       string           `json:"quiz_id"`
	SubmissionID string           `json:"submission_id"`
	TotalScore   int              `json:"total_score"`
	MaxScore     int              `json:"max_score"`
	PerQuestion  []QuestionResult `json:"per_question"`
}
