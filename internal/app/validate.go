package app

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"quiz-api-service/internal/domain"
)

const (
	maxTitleLen        = 300
	maxDescriptionLen  = 2000
	maxQuestionLen     = 1000
	maxOptionLen       = 500
	minOptions         = 2
	maxOptions         = 50
	maxAcceptedAnswers = 50
)

// QuizInput is the proposed quiz definition as submitted by an admin.
type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
	Published   bool            `json:"published"`
}

// QuestionInput is one proposed question. Type wins when both the type and
// the legacy multiple_choice flag are present; when type is absent the flag
// selects between single and multiple choice.
type QuestionInput struct {
	Text            string        `json:"text"`
	Type            string        `json:"type"`
	MultipleChoice  bool          `json:"multiple_choice"`
	Options         []OptionInput `json:"options"`
	AcceptedAnswers []string      `json:"accepted_answers"`
	Points          *int          `json:"points"`
}

// OptionInput is one proposed option with its correctness flag.
type OptionInput struct {
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

func (q QuestionInput) effectiveType() domain.QuestionType {
	if q.Type != "" {
		return domain.QuestionType(q.Type)
	}
	if q.MultipleChoice {
		return domain.MultipleChoice
	}
	return domain.SingleChoice
}

// ValidateQuiz checks a proposed quiz against the definition rules and, when
// it passes, returns a normalized quiz with freshly assigned identifiers.
// All violations are accumulated into a single ValidationError.
func ValidateQuiz(input QuizInput, newID func() string, now time.Time) (domain.Quiz, error) {
	verr := &domain.ValidationError{}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		verr.Add("title", "must not be empty")
	} else if utf8.RuneCountInString(input.Title) > maxTitleLen {
		verr.Addf("title", "must be at most %d characters", maxTitleLen)
	}
	if utf8.RuneCountInString(input.Description) > maxDescriptionLen {
		verr.Addf("description", "must be at most %d characters", maxDescriptionLen)
	}
	if len(input.Questions) == 0 {
		verr.Add("questions", "quiz must contain at least one question")
	}

	questions := make([]domain.Question, 0, len(input.Questions))
	for i, qi := range input.Questions {
		questions = append(questions, validateQuestion(qi, i, newID, verr))
	}

	if verr.HasErrors() {
		return domain.Quiz{}, verr
	}

	return domain.Quiz{
		ID:          newID(),
		Title:       input.Title,
		Description: input.Description,
		Questions:   questions,
		Published:   input.Published,
		CreatedAt:   now,
	}, nil
}

func validateQuestion(qi QuestionInput, idx int, newID func() string, verr *domain.ValidationError) domain.Question {
	field := func(name string) string { return fmt.Sprintf("questions[%d].%s", idx, name) }

	if strings.TrimSpace(qi.Text) == "" {
		verr.Add(field("text"), "must not be empty")
	} else if utf8.RuneCountInString(qi.Text) > maxQuestionLen {
		verr.Addf(field("text"), "must be at most %d characters", maxQuestionLen)
	}

	qType := qi.effectiveType()
	if !qType.Valid() {
		verr.Addf(field("type"), "unknown question type %q", qi.Type)
	}

	points := 1
	if qi.Points != nil {
		points = *qi.Points
		if points < 0 {
			verr.Add(field("points"), "must not be negative")
		}
	}

	question := domain.Question{
		ID:     newID(),
		Text:   qi.Text,
		Type:   qType,
		Points: points,
	}

	switch qType {
	case domain.FreeText:
		if len(qi.Options) > 0 {
			verr.Add(field("options"), "free-text questions must not have options")
		}
		if len(qi.AcceptedAnswers) == 0 {
			verr.Add(field("accepted_answers"), "free-text questions need at least one accepted answer")
		} else if len(qi.AcceptedAnswers) > maxAcceptedAnswers {
			verr.Addf(field("accepted_answers"), "at most %d accepted answers allowed", maxAcceptedAnswers)
		}
		for j, ans := range qi.AcceptedAnswers {
			if strings.TrimSpace(ans) == "" {
				verr.Addf(field("accepted_answers"), "answer %d must not be blank", j)
			} else if utf8.RuneCountInString(ans) > maxOptionLen {
				verr.Addf(field("accepted_answers"), "answer %d must be at most %d characters", j, maxOptionLen)
			}
		}
		question.AcceptedAnswers = qi.AcceptedAnswers

	case domain.SingleChoice, domain.MultipleChoice:
		if len(qi.AcceptedAnswers) > 0 {
			verr.Add(field("accepted_answers"), "only free-text questions may have accepted answers")
		}
		if len(qi.Options) < minOptions || len(qi.Options) > maxOptions {
			verr.Addf(field("options"), "must have between %d and %d options", minOptions, maxOptions)
		}

		seen := make(map[string]bool, len(qi.Options))
		correct := 0
		options := make([]domain.Option, 0, len(qi.Options))
		for j, oi := range qi.Options {
			trimmed := strings.TrimSpace(oi.Text)
			if trimmed == "" {
				verr.Addf(field("options"), "option %d text must not be empty", j)
			} else if utf8.RuneCountInString(oi.Text) > maxOptionLen {
				verr.Addf(field("options"), "option %d text must be at most %d characters", j, maxOptionLen)
			}
			if seen[trimmed] {
				verr.Addf(field("options"), "option text %q duplicated within question", trimmed)
			}
			seen[trimmed] = true
			if oi.Correct {
				correct++
			}
			options = append(options, domain.Option{ID: newID(), Text: oi.Text, Correct: oi.Correct})
		}

		if qType == domain.MultipleChoice {
			if correct < 1 {
				verr.Add(field("options"), "multiple-choice question must have at least one correct option")
			}
		} else if correct != 1 {
			verr.Addf(field("options"), "single-choice question must have exactly one correct option, got %d", correct)
		}
		question.Options = options
	}

	return question
}

// SubmissionInput is a proposed set of answers to one quiz.
type SubmissionInput struct {
	Answers []AnswerInput `json:"answers"`
}

// AnswerInput is one proposed answer. Choice answers select option IDs;
// free-text answers carry the response text.
type AnswerInput struct {
	QuestionID        string   `json:"question_id"`
	SelectedOptionIDs []string `json:"selected_option_ids"`
	Text              string   `json:"text"`
}

// ValidateSubmission checks a proposed submission's structure: at least one
// answer, each question answered at most once, non-empty unique selections.
func ValidateSubmission(input SubmissionInput) ([]domain.Answer, error) {
	verr := &domain.ValidationError{}

	if len(input.Answers) == 0 {
		verr.Add("answers", "submission must contain at least one answer")
	}

	seenQuestions := make(map[string]bool, len(input.Answers))
	answers := make([]domain.Answer, 0, len(input.Answers))
	for i, ai := range input.Answers {
		field := func(name string) string { return fmt.Sprintf("answers[%d].%s", i, name) }

		if ai.QuestionID == "" {
			verr.Add(field("question_id"), "must not be empty")
		} else if seenQuestions[ai.QuestionID] {
			verr.Add(field("question_id"), "each question may be answered only once")
		}
		seenQuestions[ai.QuestionID] = true

		if len(ai.SelectedOptionIDs) == 0 && strings.TrimSpace(ai.Text) == "" {
			verr.Add(field("selected_option_ids"), "answer must select at least one option or provide text")
		}
		seenOptions := make(map[string]bool, len(ai.SelectedOptionIDs))
		for _, id := range ai.SelectedOptionIDs {
			if seenOptions[id] {
				verr.Add(field("selected_option_ids"), "selected option ids must be unique")
				break
			}
			seenOptions[id] = true
		}

		answers = append(answers, domain.Answer{
			QuestionID:        ai.QuestionID,
			SelectedOptionIDs: ai.SelectedOptionIDs,
			Text:              ai.Text,
		})
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return answers, nil
}
