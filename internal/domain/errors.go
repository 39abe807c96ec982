package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the quiz does not exist or is inactive.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrCourseNotFound indicates the course slug is unknown or inactive.
	ErrCourseNotFound = errors.New("course not found")
	// ErrInvalidContent marks quiz content that cannot be graded.
	ErrInvalidContent = errors.New("invalid quiz content")
)

var (
	ErrEmptyQuiz        = &ValidationError{Reason: "quiz has no questions"}
	ErrQuizMismatch     = &ValidationError{Reason: "quiz id mismatch"}
	ErrAnswersNotObject = &ValidationError{Reason: "answers must be an object"}
)

// ValidationError reports malformed client input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StorageError wraps a failure of the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound) || errors.Is(err, ErrCourseNotFound)
}
