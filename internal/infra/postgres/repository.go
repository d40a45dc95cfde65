package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-api-service/internal/domain"
)

// Repository stores quizzes and submissions as JSONB documents in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateQuiz(ctx context.Context, quiz domain.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO quizzes (id, data, created_at) VALUES ($1, $2::jsonb, $3)`,
		quiz.ID, data, quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *Repository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

func (r *Repository) CreateSubmission(ctx context.Context, submission domain.Submission) error {
	data, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO submissions (id, quiz_id, data, score, created_at) VALUES ($1, $2, $3::jsonb, $4, $5)`,
		submission.ID, submission.QuizID, data, submission.Score, submission.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *Repository) ListSubmissionsByQuiz(ctx context.Context, quizID string) ([]domain.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT data FROM submissions WHERE quiz_id=$1 ORDER BY created_at, id`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []domain.Submission
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		var submission domain.Submission
		if err := json.Unmarshal(raw, &submission); err != nil {
			return nil, fmt.Errorf("unmarshal submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}
