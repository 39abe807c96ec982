package domain

import "time"

// Course is a catalog entry grouping PDFs and quizzes.
type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	Level       string    `json:"level"`
	Duration    string    `json:"duration"`
	Icon        string    `json:"icon"`
	Image       string    `json:"image"`
	PDFCount    int       `json:"pdf_count"`
	QuizCount   int       `json:"quiz_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CourseDetail is a course together with its active resources.
type CourseDetail struct {
	Course
	PDFs    []PDF         `json:"pdfs"`
	Quizzes []QuizSummary `json:"quizzes"`
}

// PDF is a downloadable resource, optionally attached to a course.
type PDF struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	CourseID    *int64    `json:"course"`
	CourseTitle string    `json:"course_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuizSummary is the list view of a quiz.
type QuizSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CourseID      *int64    `json:"course"`
	CourseTitle   string    `json:"course_title,omitempty"`
	TimeLimit     int       `json:"time_limit"`
	PassingScore  int       `json:"passing_score"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Choice is one selectable answer for a question.
type Choice struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Order   int    `json:"order"`
	Correct bool   `json:"correct"`
}

// Question is a single prompt; choice order is for display only.
type Question struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Order   int      `json:"order"`
	Choices []Choice `json:"choices"`
}

// Quiz is the full snapshot used for grading, including correct flags.
type Quiz struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CourseID     *int64     `json:"course_id,omitempty"`
	TimeLimit    int        `json:"time_limit"`
	PassingScore int        `json:"passing_score"`
	Questions    []Question `json:"questions"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AnswerSet maps question IDs to the chosen choice ID.
type AnswerSet map[int64]int64

// Submission is a normalized quiz submission. QuizID is zero when the client omitted it.
type Submission struct {
	QuizID  int64
	Answers AnswerSet
}

// User is the authenticated caller resolved by the identity layer.
type User struct {
	ID    int64
	Email string
}

// NewAttempt carries the fields the attempt store needs to record a grading.
type NewAttempt struct {
	UserID         int64
	QuizID         int64
	Score          int
	TotalQuestions int
}

// QuizAttempt is an append-only record of one grading event.
type QuizAttempt struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user"`
	QuizID         int64     `json:"quiz"`
	QuizTitle      string    `json:"quiz_title,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// QuestionResult is the per-question feedback returned after grading.
type QuestionResult struct {
	QuestionID    int64   `json:"question_id"`
	QuestionText  string  `json:"question_text"`
	UserAnswer    *string `json:"user_answer"`
	CorrectAnswer *string `json:"correct_answer"`
	Correct       bool    `json:"is_correct"`
}

// GradingResult is the outcome of a graded and recorded submission.
type GradingResult struct {
	AttemptID      int64            `json:"attempt_id"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectCount   int              `json:"correct_count"`
	Passed         bool             `json:"passed"`
	Results        []QuestionResult `json:"results"`
	CompletedAt    time.Time        `json:"completed_at"`
}
