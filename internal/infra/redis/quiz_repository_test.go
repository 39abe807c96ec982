package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/infra/memory"
	"course-quiz-service/internal/seed"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := newCountingLoader(t)
	repo := NewQuizRepository(newClient(mr), loader, time.Minute, nil)

	quiz, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:1:snapshot") {
		t.Fatalf("expected snapshot key to be set")
	}
	if ttl := mr.TTL("quiz:1:snapshot"); ttl < time.Minute {
		t.Fatalf("expected ttl >= 1m, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get cached quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Questions[0].Text != quiz.Questions[0].Text || !cached.Questions[0].Choices[0].Correct {
		t.Fatalf("cached snapshot lost content: %+v", cached.Questions[0])
	}

	if err := repo.Invalidate(context.Background(), 1); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetQuiz(context.Background(), 1)
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

func TestQuizRepositoryFallsBackWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	loader := newCountingLoader(t)
	repo := NewQuizRepository(client, loader, time.Minute, nil)
	if _, err := repo.GetQuiz(context.Background(), 1); err != nil {
		t.Fatalf("expected loader fallback, got %v", err)
	}
}

func TestQuizRepositoryDoesNotCacheMisses(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuizRepository(newClient(mr), newCountingLoader(t), time.Minute, nil)
	if _, err := repo.GetQuiz(context.Background(), 404); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if mr.Exists("quiz:404:snapshot") {
		t.Fatalf("missing quiz must not be cached")
	}
}

type countingLoader struct {
	QuizLoader
	calls int
}

func newCountingLoader(t *testing.T) *countingLoader {
	t.Helper()
	data, err := seed.Default()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &countingLoader{QuizLoader: memory.NewCatalog(data)}
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
}

func TestInvalidateQuizzesDropsSnapshots(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	for _, key := range []string{"quiz:1:snapshot", "quiz:2:snapshot", "quiz:3:snapshot"} {
		if err := mr.Set(key, "{}"); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	client := newClient(mr)
	if err := InvalidateQuizzes(context.Background(), client, 1, 3); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists("quiz:1:snapshot") || mr.Exists("quiz:3:snapshot") {
		t.Fatalf("expected snapshots 1 and 3 removed")
	}
	if !mr.Exists("quiz:2:snapshot") {
		t.Fatalf("snapshot 2 should be untouched")
	}
	if err := InvalidateQuizzes(context.Background(), client); err != nil {
		t.Fatalf("invalidate nothing: %v", err)
	}
}
