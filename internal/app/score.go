package app

import (
	"strings"

	"quiz-api-service/internal/domain"
)

// ScoreSubmission evaluates answers against the stored quiz definition.
// Answers referencing unknown question IDs are skipped without error, so
// clients holding a stale quiz are not rejected wholesale. MaxScore sums
// points over the questions actually answered, not the whole quiz.
func ScoreSubmission(quiz domain.Quiz, answers []domain.Answer, submissionID string) domain.SubmissionResult {
	result := domain.SubmissionResult{
		QuizID:       quiz.ID,
		SubmissionID: submissionID,
		PerQuestion:  make([]domain.QuestionResult, 0, len(answers)),
	}

	byID := make(map[string]*domain.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		byID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			continue
		}

		correct := isCorrect(*question, answer)
		earned := 0
		if correct {
			earned = question.Points
		}

		qr := domain.QuestionResult{
			QuestionID:       question.ID,
			Correct:          correct,
			EarnedPoints:     earned,
			MaxPoints:        question.Points,
			CorrectOptionIDs: question.CorrectOptionIDs(),
		}
		if question.Type == domain.FreeText {
			qr.AcceptedAnswers = question.AcceptedAnswers
		}

		result.PerQuestion = append(result.PerQuestion, qr)
		result.TotalScore += earned
		result.MaxScore += question.Points
	}

	return result
}

func isCorrect(question domain.Question, answer domain.Answer) bool {
	switch question.Type {
	case domain.FreeText:
		given := normalizeText(answer.Text)
		if given == "" {
			return false
		}
		for _, accepted := range question.AcceptedAnswers {
			if normalizeText(accepted) == given {
				return true
			}
		}
		return false
	default:
		// Exact set equality; partial overlap earns nothing.
		return sameIDSet(answer.SelectedOptionIDs, question.CorrectOptionIDs())
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// sameIDSet relies on submission validation having rejected duplicate
// selected IDs.
func sameIDSet(selected, correct []string) bool {
	if len(selected) != len(correct) {
		return false
	}
	set := make(map[string]bool, len(correct))
	for _, id := range correct {
		set[id] = true
	}
	for _, id := range selected {
		if !set[id] {
			return false
		}
	}
	return true
}
