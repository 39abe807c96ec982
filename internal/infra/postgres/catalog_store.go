package postgres

import (
	"context"
	"errors"
	"fmt"

	"course-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogStore reads active courses, PDFs and quiz summaries.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

const courseColumns = `
	c.id, c.title, c.description, c.slug, c.level, c.duration, c.icon, c.image, c.created_at,
	(SELECT count(*) FROM pdfs p WHERE p.course_id = c.id AND p.is_active),
	(SELECT count(*) FROM quizzes z WHERE z.course_id = c.id AND z.is_active)`

func (s *CatalogStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.is_active ORDER BY c.created_at DESC, c.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]domain.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *CatalogStore) GetCourse(ctx context.Context, slug string) (domain.Course, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.slug=$1 AND c.is_active`, slug)
	course, err := scanCourse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	return course, err
}

func (s *CatalogStore) ListPDFs(ctx context.Context, courseID *int64) ([]domain.PDF, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.title, p.description, p.filename, p.file_path, p.course_id, COALESCE(c.title, ''), p.created_at
		FROM pdfs p
		LEFT JOIN courses c ON c.id = p.course_id
		WHERE p.is_active AND ($1::bigint IS NULL OR p.course_id = $1)
		ORDER BY p.created_at DESC, p.id DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	defer rows.Close()

	pdfs := make([]domain.PDF, 0)
	for rows.Next() {
		var p domain.PDF
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Filename, &p.FilePath, &p.CourseID, &p.CourseTitle, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pdf: %w", err)
		}
		pdfs = append(pdfs, p)
	}
	return pdfs, rows.Err()
}

func (s *CatalogStore) ListQuizzes(ctx context.Context, courseID *int64) ([]domain.QuizSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT z.id, z.title, z.description, z.course_id, COALESCE(c.title, ''), z.time_limit, z.passing_score,
			(SELECT count(*) FROM questions q WHERE q.quiz_id = z.id), z.created_at
		FROM quizzes z
		LEFT JOIN courses c ON c.id = z.course_id
		WHERE z.is_active AND ($1::bigint IS NULL OR z.course_id = $1)
		ORDER BY z.created_at DESC, z.id DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.QuizSummary, 0)
	for rows.Next() {
		var q domain.QuizSummary
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.CourseID, &q.CourseTitle, &q.TimeLimit, &q.PassingScore, &q.QuestionCount, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func scanCourse(row pgx.Row) (domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.Level, &c.Duration, &c.Icon, &c.Image, &c.CreatedAt, &c.PDFCount, &c.QuizCount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.Course{}, fmt.Errorf("scan course: %w", err)
	}
	return c, err
}
