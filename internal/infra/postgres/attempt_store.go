package postgres

import (
	"context"
	"fmt"

	"course-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AttemptStore persists quiz attempts. Rows are only ever inserted.
type AttemptStore struct {
	pool *pgxpool.Pool
}

func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
}

func (s *AttemptStore) CreateAttempt(ctx context.Context, in domain.NewAttempt) (domain.QuizAttempt, error) {
	attempt := domain.QuizAttempt{
		UserID:         in.UserID,
		QuizID:         in.QuizID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO quiz_attempts (user_id, quiz_id, score, total_questions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed_at`,
		in.UserID, in.QuizID, in.Score, in.TotalQuestions).Scan(&attempt.ID, &attempt.CompletedAt)
	if err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	return attempt, nil
}

func (s *AttemptStore) ListAttempts(ctx context.Context, userID int64) ([]domain.QuizAttempt, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.quiz_id, q.title, a.score, a.total_questions, a.completed_at
		FROM quiz_attempts a
		JOIN quizzes q ON q.id = a.quiz_id
		WHERE a.user_id=$1
		ORDER BY a.completed_at DESC, a.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuizAttempt, 0)
	for rows.Next() {
		var a domain.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &a.QuizTitle, &a.Score, &a.TotalQuestions, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
