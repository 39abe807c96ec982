package app

import (
	"context"

	"course-quiz-service/internal/domain"
)

// CatalogRepository lists active courses and their resources.
type CatalogRepository interface {
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, slug string) (domain.Course, error)
	ListPDFs(ctx context.Context, courseID *int64) ([]domain.PDF, error)
	ListQuizzes(ctx context.Context, courseID *int64) ([]domain.QuizSummary, error)
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Courses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list courses", Err: err}
	}
	return courses, nil
}

// Course returns the course with its active PDFs and quizzes.
func (s *CatalogService) Course(ctx context.Context, slug string) (domain.CourseDetail, error) {
	course, err := s.repo.GetCourse(ctx, slug)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.CourseDetail{}, err
		}
		return domain.CourseDetail{}, &domain.StorageError{Op: "get course", Err: err}
	}
	pdfs, err := s.PDFs(ctx, &course.ID)
	if err != nil {
		return domain.CourseDetail{}, err
	}
	quizzes, err := s.Quizzes(ctx, &course.ID)
	if err != nil {
		return domain.CourseDetail{}, err
	}
	return domain.CourseDetail{Course: course, PDFs: pdfs, Quizzes: quizzes}, nil
}

func (s *CatalogService) PDFs(ctx context.Context, courseID *int64) ([]domain.PDF, error) {
	pdfs, err := s.repo.ListPDFs(ctx, courseID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list pdfs", Err: err}
	}
	return pdfs, nil
}

func (s *CatalogService) Quizzes(ctx context.Context, courseID *int64) ([]domain.QuizSummary, error) {
	quizzes, err := s.repo.ListQuizzes(ctx, courseID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list quizzes", Err: err}
	}
	return quizzes, nil
}
