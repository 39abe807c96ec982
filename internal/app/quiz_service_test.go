package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/infra/memory"
)

type quizMap map[int64]domain.Quiz

func (m quizMap) GetQuiz(_ context.Context, id int64) (domain.Quiz, error) {
	if q, ok := m[id]; ok {
		return q, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func newTestService(quizzes quizMap) (*app.QuizService, *memory.AttemptStore) {
	attempts := memory.NewAttemptStore()
	return app.NewQuizService(quizzes, attempts), attempts
}

func TestSubmitRecordsAttempt(t *testing.T) {
	ctx := context.Background()
	quiz := buildQuiz(5, 70)
	service, attempts := newTestService(quizMap{1: quiz})
	user := domain.User{ID: 9}

	result, err := service.Submit(ctx, user, 1, domain.Submission{QuizID: 1, Answers: allCorrect(quiz)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 100 || !result.Passed || result.AttemptID == 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	list, _ := service.Attempts(ctx, user)
	if len(list) != 1 || list[0].Score != 100 || list[0].TotalQuestions != 5 || list[0].UserID != 9 {
		t.Fatalf("unexpected attempts %+v", list)
	}
	if attempts.Len() != 1 {
		t.Fatalf("expected one attempt, got %d", attempts.Len())
	}
}

func TestSubmitSequentialAttemptsAreDistinct(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(quizMap{1: buildQuiz(2, 50)})
	user := domain.User{ID: 9}

	first, err := service.Submit(ctx, user, 1, domain.Submission{})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := service.Submit(ctx, user, 1, domain.Submission{})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if first.AttemptID == second.AttemptID {
		t.Fatalf("expected distinct attempt ids, got %d twice", first.AttemptID)
	}
	if second.CompletedAt.Before(first.CompletedAt) {
		t.Fatalf("timestamps decreased: %v then %v", first.CompletedAt, second.CompletedAt)
	}
}

func TestSubmitFailuresRecordNothing(t *testing.T) {
	ctx := context.Background()
	service, attempts := newTestService(quizMap{
		1: buildQuiz(3, 50),
		2: {ID: 2, Title: "Empty"},
	})
	user := domain.User{ID: 1}

	if _, err := service.Submit(ctx, user, 404, domain.Submission{}); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.Submit(ctx, user, 1, domain.Submission{QuizID: 2}); !errors.Is(err, domain.ErrQuizMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if _, err := service.Submit(ctx, user, 2, domain.Submission{}); !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected empty quiz, got %v", err)
	}
	if attempts.Len() != 0 {
		t.Fatalf("expected no attempts, got %d", attempts.Len())
	}
}

type brokenQuizzes struct{}

func (brokenQuizzes) GetQuiz(context.Context, int64) (domain.Quiz, error) {
	return domain.Quiz{}, errors.New("connection refused")
}

type brokenAttempts struct{ memory.AttemptStore }

func (*brokenAttempts) CreateAttempt(context.Context, domain.NewAttempt) (domain.QuizAttempt, error) {
	return domain.QuizAttempt{}, errors.New("disk full")
}

func TestSubmitStorageErrors(t *testing.T) {
	ctx := context.Background()
	var serr *domain.StorageError

	_, err := app.NewQuizService(brokenQuizzes{}, memory.NewAttemptStore()).Submit(ctx, domain.User{ID: 1}, 1, domain.Submission{})
	if !errors.As(err, &serr) || serr.Op != "load quiz" {
		t.Fatalf("expected load storage error, got %v", err)
	}

	result, err := app.NewQuizService(quizMap{1: buildQuiz(1, 0)}, &brokenAttempts{}).Submit(ctx, domain.User{ID: 1}, 1, domain.Submission{})
	if !errors.As(err, &serr) || serr.Op != "create attempt" {
		t.Fatalf("expected create storage error, got %v", err)
	}
	if result.Results != nil || result.Score != 0 {
		t.Fatalf("expected no partial result, got %+v", result)
	}
}

func TestSubmitThroughCachingRepository(t *testing.T) {
	ctx := context.Background()
	bad := buildQuiz(1, 50)
	bad.Questions[0].Choices[0].Correct = true
	repo := memory.NewQuizRepository(loaderFunc(func(_ context.Context, id int64) (domain.Quiz, error) {
		return bad, nil
	}), time.Minute)
	attempts := memory.NewAttemptStore()
	service := app.NewQuizService(repo, attempts)

	_, err := service.Submit(ctx, domain.User{ID: 1}, 1, domain.Submission{})
	if !errors.Is(err, domain.ErrInvalidContent) {
		t.Fatalf("expected invalid content, got %v", err)
	}
	if attempts.Len() != 0 {
		t.Fatalf("invalid content must not be graded")
	}
}

type loaderFunc func(ctx context.Context, id int64) (domain.Quiz, error)

func (f loaderFunc) LoadQuiz(ctx context.Context, id int64) (domain.Quiz, error) {
	return f(ctx, id)
}
