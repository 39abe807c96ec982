package app

import (
	"context"
	"errors"

	"course-quiz-service/internal/domain"
)

// QuizRepository loads quiz snapshots (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error)
}

// AttemptRepository records and lists quiz attempts. Records are append-only.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt domain.NewAttempt) (domain.QuizAttempt, error)
	ListAttempts(ctx context.Context, userID int64) ([]domain.QuizAttempt, error)
}

// QuizService contains the quiz-taking use cases.
type QuizService struct {
	quizzes  QuizRepository
	attempts AttemptRepository
}

func NewQuizService(quizzes QuizRepository, attempts AttemptRepository) *QuizService {
	return &QuizService{quizzes: quizzes, attempts: attempts}
}

// GetQuiz returns the full quiz snapshot. Callers must not expose correct flags.
func (s *QuizService) GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, classifyLoadError(err)
	}
	return quiz, nil
}

// Submit grades a submission for quizID on behalf of user and records exactly
// one attempt. Nothing is written when loading, validation or grading fails.
func (s *QuizService) Submit(ctx context.Context, user domain.User, quizID int64, sub domain.Submission) (domain.GradingResult, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.GradingResult{}, err
	}
	if sub.QuizID != 0 && sub.QuizID != quiz.ID {
		return domain.GradingResult{}, domain.ErrQuizMismatch
	}

	card, err := Grade(quiz, sub.Answers)
	if err != nil {
		return domain.GradingResult{}, err
	}

	attempt, err := s.attempts.CreateAttempt(ctx, domain.NewAttempt{
		UserID:         user.ID,
		QuizID:         quiz.ID,
		Score:          card.Score,
		TotalQuestions: card.TotalQuestions,
	})
	if err != nil {
		return domain.GradingResult{}, &domain.StorageError{Op: "create attempt", Err: err}
	}

	return domain.GradingResult{
		AttemptID:      attempt.ID,
		Score:          card.Score,
		TotalQuestions: card.TotalQuestions,
		CorrectCount:   card.CorrectCount,
		Passed:         card.Passed,
		Results:        card.Results,
		CompletedAt:    attempt.CompletedAt,
	}, nil
}

// Attempts lists the user's attempts, newest first.
func (s *QuizService) Attempts(ctx context.Context, user domain.User) ([]domain.QuizAttempt, error) {
	attempts, err := s.attempts.ListAttempts(ctx, user.ID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list attempts", Err: err}
	}
	return attempts, nil
}

func classifyLoadError(err error) error {
	if errors.Is(err, domain.ErrQuizNotFound) || errors.Is(err, domain.ErrInvalidContent) {
		return err
	}
	var serr *domain.StorageError
	if errors.As(err, &serr) {
		return err
	}
	return &domain.StorageError{Op: "load quiz", Err: err}
}
