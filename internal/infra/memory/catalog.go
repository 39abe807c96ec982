package memory

import (
	"context"
	"sort"
	"time"

	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/seed"
)

// Catalog serves a fixed catalog from memory. It implements both
// app.CatalogRepository and QuizLoader.
type Catalog struct {
	courses []domain.Course
	pdfs    []domain.PDF
	quizzes []domain.Quiz
}

// NewCatalog assigns sequential IDs to the seed data. Question and choice IDs
// are global sequences, as they would be in a relational store.
func NewCatalog(data seed.Catalog) *Catalog {
	c := &Catalog{}
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var questionSeq, choiceSeq int64

	for i, sc := range data.Courses {
		courseID := int64(i + 1)
		c.courses = append(c.courses, domain.Course{
			ID:          courseID,
			Title:       sc.Title,
			Description: sc.Description,
			Slug:        sc.Slug,
			Level:       sc.Level,
			Duration:    sc.Duration,
			Icon:        sc.Icon,
			Image:       sc.Image,
			CreatedAt:   created,
		})
		for _, sp := range sc.PDFs {
			c.addPDF(sp, &courseID, sc.Title, created)
		}
		for _, sq := range sc.Quizzes {
			quiz := domain.Quiz{
				ID:           int64(len(c.quizzes) + 1),
				Title:        sq.Title,
				Description:  sq.Description,
				CourseID:     int64Ptr(courseID),
				TimeLimit:    sq.TimeLimit,
				PassingScore: sq.PassingScore,
				CreatedAt:    created,
			}
			for order, sqn := range sq.Questions {
				questionSeq++
				question := domain.Question{ID: questionSeq, Text: sqn.Text, Order: order}
				for corder, sch := range sqn.Choices {
					choiceSeq++
					question.Choices = append(question.Choices, domain.Choice{
						ID:      choiceSeq,
						Text:    sch.Text,
						Order:   corder,
						Correct: sch.Correct,
					})
				}
				quiz.Questions = append(quiz.Questions, question)
			}
			c.quizzes = append(c.quizzes, quiz)
		}
	}
	for _, sp := range data.PDFs {
		c.addPDF(sp, nil, "", created)
	}
	return c
}

func (c *Catalog) addPDF(sp seed.PDF, courseID *int64, courseTitle string, created time.Time) {
	pdf := domain.PDF{
		ID:          int64(len(c.pdfs) + 1),
		Title:       sp.Title,
		Description: sp.Description,
		Filename:    sp.Filename,
		FilePath:    sp.FilePath,
		CourseTitle: courseTitle,
		CreatedAt:   created,
	}
	if courseID != nil {
		pdf.CourseID = int64Ptr(*courseID)
	}
	c.pdfs = append(c.pdfs, pdf)
}

func (c *Catalog) LoadQuiz(_ context.Context, quizID int64) (domain.Quiz, error) {
	for _, q := range c.quizzes {
		if q.ID == quizID {
			return cloneQuiz(q), nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (c *Catalog) ListCourses(_ context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(c.courses))
	for _, course := range c.courses {
		out = append(out, c.withCounts(course))
	}
	return out, nil
}

func (c *Catalog) GetCourse(_ context.Context, slug string) (domain.Course, error) {
	for _, course := range c.courses {
		if course.Slug == slug {
			return c.withCounts(course), nil
		}
	}
	return domain.Course{}, domain.ErrCourseNotFound
}

func (c *Catalog) ListPDFs(_ context.Context, courseID *int64) ([]domain.PDF, error) {
	out := make([]domain.PDF, 0, len(c.pdfs))
	for _, pdf := range c.pdfs {
		if courseID == nil || (pdf.CourseID != nil && *pdf.CourseID == *courseID) {
			out = append(out, pdf)
		}
	}
	return out, nil
}

func (c *Catalog) ListQuizzes(_ context.Context, courseID *int64) ([]domain.QuizSummary, error) {
	out := make([]domain.QuizSummary, 0, len(c.quizzes))
	for _, q := range c.quizzes {
		if courseID != nil && (q.CourseID == nil || *q.CourseID != *courseID) {
			continue
		}
		summary := domain.QuizSummary{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			CourseID:      q.CourseID,
			TimeLimit:     q.TimeLimit,
			PassingScore:  q.PassingScore,
			QuestionCount: len(q.Questions),
			CreatedAt:     q.CreatedAt,
		}
		if q.CourseID != nil {
			summary.CourseTitle = c.courseTitle(*q.CourseID)
		}
		out = append(out, summary)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (c *Catalog) withCounts(course domain.Course) domain.Course {
	for _, pdf := range c.pdfs {
		if pdf.CourseID != nil && *pdf.CourseID == course.ID {
			course.PDFCount++
		}
	}
	for _, q := range c.quizzes {
		if q.CourseID != nil && *q.CourseID == course.ID {
			course.QuizCount++
		}
	}
	return course
}

func (c *Catalog) courseTitle(id int64) string {
	for _, course := range c.courses {
		if course.ID == id {
			return course.Title
		}
	}
	return ""
}

// cloneQuiz copies the slices so callers cannot mutate the catalog.
func cloneQuiz(q domain.Quiz) domain.Quiz {
	out := q
	out.Questions = make([]domain.Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Choices = append([]domain.Choice(nil), question.Choices...)
		out.Questions[i] = question
	}
	return out
}

func int64Ptr(v int64) *int64 {
	return &v
}
