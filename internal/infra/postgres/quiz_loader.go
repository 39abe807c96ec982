package postgres

import (
	"context"
	"errors"
	"fmt"

	"course-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizLoader loads active quizzes with their questions and choices.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := l.pool.QueryRow(ctx, `
		SELECT id, title, description, course_id, time_limit, passing_score, created_at
		FROM quizzes WHERE id=$1 AND is_active`, quizID).
		Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.CourseID, &quiz.TimeLimit, &quiz.PassingScore, &quiz.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := l.pool.Query(ctx, `
		SELECT q.id, q.question_text, q."order", c.id, c.choice_text, c."order", c.is_correct
		FROM questions q
		LEFT JOIN choices c ON c.question_id = q.id
		WHERE q.quiz_id=$1
		ORDER BY q."order", q.id, c."order", c.id`, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			q           domain.Question
			choiceID    *int64
			choiceText  *string
			choiceOrder *int
			correct     *bool
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.Order, &choiceID, &choiceText, &choiceOrder, &correct); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan question: %w", err)
		}
		if n := len(quiz.Questions); n == 0 || quiz.Questions[n-1].ID != q.ID {
			quiz.Questions = append(quiz.Questions, q)
		}
		if choiceID == nil {
			continue
		}
		last := &quiz.Questions[len(quiz.Questions)-1]
		last.Choices = append(last.Choices, domain.Choice{
			ID:      *choiceID,
			Text:    *choiceText,
			Order:   *choiceOrder,
			Correct: *correct,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	return quiz, nil
}
