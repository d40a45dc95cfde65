package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quiz-api-service/internal/domain"
)

// QuizRepository persists and loads quiz definitions.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz domain.Quiz) error
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// SubmissionRepository persists scored submissions.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission domain.Submission) error
	ListSubmissionsByQuiz(ctx context.Context, quizID string) ([]domain.Submission, error)
}

// QuizService contains the quiz use cases: create, fetch public view,
// submit answers, review submissions.
type QuizService struct {
	quizzes     QuizRepository
	submissions SubmissionRepository
	now         func() time.Time
	newID       func() string
}

func NewQuizService(quizzes QuizRepository, submissions SubmissionRepository) *QuizService {
	return &QuizService{
		quizzes:     quizzes,
		submissions: submissions,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// CreateQuiz validates a proposed definition, assigns identifiers and
// persists the quiz atomically. Nothing is stored when validation fails.
func (s *QuizService) CreateQuiz(ctx context.Context, input QuizInput) (domain.Quiz, error) {
	quiz, err := ValidateQuiz(input, s.newID, s.now().UTC())
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("store quiz: %w", err)
	}
	return quiz, nil
}

// GetPublicQuiz loads a quiz and projects its public view.
func (s *QuizService) GetPublicQuiz(ctx context.Context, quizID string) (domain.PublicQuiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.PublicQuiz{}, err
	}
	return ProjectPublic(quiz), nil
}

// SubmitQuiz scores a submission against the stored answer key and persists
// the raw answers with the total score. The quiz itself is never mutated.
func (s *QuizService) SubmitQuiz(ctx context.Context, quizID string, input SubmissionInput) (domain.SubmissionResult, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.SubmissionResult{}, err
	}

	answers, err := ValidateSubmission(input)
	if err != nil {
		return domain.SubmissionResult{}, err
	}

	submissionID := s.newID()
	result := ScoreSubmission(quiz, answers, submissionID)

	submission := domain.Submission{
		ID:        submissionID,
		QuizID:    quiz.ID,
		Answers:   answers,
		Score:     result.TotalScore,
		CreatedAt: s.now().UTC(),
	}
	if err := s.submissions.CreateSubmission(ctx, submission); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("store submission: %w", err)
	}
	return result, nil
}

// ListSubmissions returns the stored submissions for a quiz, oldest first.
func (s *QuizService) ListSubmissions(ctx context.Context, quizID string) ([]domain.Submission, error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	return s.submissions.ListSubmissionsByQuiz(ctx, quizID)
}
