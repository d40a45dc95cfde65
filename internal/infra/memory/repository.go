package memory

import (
	"context"
	"sync"

	"quiz-api-service/internal/domain"
)

// Repository is an in-memory quiz and submission store, used when no
// database is configured and in tests.
type Repository struct {
	mu          sync.RWMutex
	quizzes     map[string]domain.Quiz
	submissions map[string][]domain.Submission
}

func NewRepository() *Repository {
	return &Repository{
		quizzes:     make(map[string]domain.Quiz),
		submissions: make(map[string][]domain.Submission),
	}
}

func (r *Repository) CreateQuiz(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[quiz.ID]; ok {
		return domain.ErrQuizExists
	}
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *Repository) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (r *Repository) CreateSubmission(_ context.Context, submission domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[submission.QuizID] = append(r.submissions[submission.QuizID], submission)
	return nil
}

func (r *Repository) ListSubmissionsByQuiz(_ context.Context, quizID string) ([]domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.submissions[quizID]
	out := make([]domain.Submission, len(stored))
	copy(out, stored)
	return out, nil
}
