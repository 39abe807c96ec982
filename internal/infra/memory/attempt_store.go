package memory

import (
	"context"
	"sync"
	"time"

	"course-quiz-service/internal/domain"
)

// AttemptStore is an in-memory, append-only implementation of app.AttemptRepository.
type AttemptStore struct {
	mu       sync.RWMutex
	clock    func() time.Time
	titles   func(quizID int64) string
	attempts []domain.QuizAttempt
}

func NewAttemptStore() *AttemptStore {
	return NewAttemptStoreWithClock(time.Now)
}

// NewAttemptStoreWithClock allows deterministic timestamps in tests.
func NewAttemptStoreWithClock(now func() time.Time) *AttemptStore {
	return &AttemptStore{clock: now}
}

// WithQuizTitles resolves quiz titles for listed attempts.
func (s *AttemptStore) WithQuizTitles(c *Catalog) *AttemptStore {
	s.titles = func(quizID int64) string {
		for _, q := range c.quizzes {
			if q.ID == quizID {
				return q.Title
			}
		}
		return ""
	}
	return s
}

func (s *AttemptStore) CreateAttempt(_ context.Context, in domain.NewAttempt) (domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := s.clock().UTC()
	if n := len(s.attempts); n > 0 && completed.Before(s.attempts[n-1].CompletedAt) {
		completed = s.attempts[n-1].CompletedAt
	}
	attempt := domain.QuizAttempt{
		ID:             int64(len(s.attempts) + 1),
		UserID:         in.UserID,
		QuizID:         in.QuizID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		CompletedAt:    completed,
	}
	if s.titles != nil {
		attempt.QuizTitle = s.titles(in.QuizID)
	}
	s.attempts = append(s.attempts, attempt)
	return attempt, nil
}

// ListAttempts returns the user's attempts, newest first.
func (s *AttemptStore) ListAttempts(_ context.Context, userID int64) ([]domain.QuizAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QuizAttempt, 0)
	for i := len(s.attempts) - 1; i >= 0; i-- {
		if s.attempts[i].UserID == userID {
			out = append(out, s.attempts[i])
		}
	}
	return out, nil
}

// Len reports how many attempts have been recorded.
func (s *AttemptStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attempts)
}
