package app

import "quiz-api-service/internal/domain"

// ProjectPublic derives the user-facing view of a stored quiz. The output is
// a pure function of the input, so a caching layer can sit in front of it.
// Correctness flags and accepted answers never cross this boundary.
func ProjectPublic(quiz domain.Quiz) domain.PublicQuiz {
	questions := make([]domain.PublicQuestion, 0, len(quiz.Questions))
	total := 0
	for _, q := range quiz.Questions {
		var options []domain.PublicOption
		if len(q.Options) > 0 {
			options = make([]domain.PublicOption, 0, len(q.Options))
			for _, opt := range q.Options {
				options = append(options, domain.PublicOption{ID: opt.ID, Text: opt.Text})
			}
		}
		questions = append(questions, domain.PublicQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Options: options,
			Points:  q.Points,
		})
		total += q.Points
	}
	return domain.PublicQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questions,
		TotalPoints: total,
	}
}
