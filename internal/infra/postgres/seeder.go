package postgres

import (
	"context"
	"fmt"

	"course-quiz-service/internal/seed"
	"github.com/uptrace/bun"
)

type courseRow struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title"`
	Description string `bun:"description"`
	Slug        string `bun:"slug"`
	Level       string `bun:"level"`
	Duration    string `bun:"duration"`
	Icon        string `bun:"icon"`
	Image       string `bun:"image"`
}

type pdfRow struct {
	bun.BaseModel `bun:"table:pdfs,alias:p"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title"`
	Description string `bun:"description"`
	Filename    string `bun:"filename"`
	FilePath    string `bun:"file_path"`
	CourseID    *int64 `bun:"course_id"`
}

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes,alias:z"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Title        string `bun:"title"`
	Description  string `bun:"description"`
	CourseID     *int64 `bun:"course_id"`
	TimeLimit    int    `bun:"time_limit"`
	PassingScore int    `bun:"passing_score"`
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID     int64  `bun:"id,pk,autoincrement"`
	QuizID int64  `bun:"quiz_id"`
	Text   string `bun:"question_text"`
	Order  int    `bun:"order"`
}

type choiceRow struct {
	bun.BaseModel `bun:"table:choices,alias:ch"`

	ID         int64  `bun:"id,pk,autoincrement"`
	QuestionID int64  `bun:"question_id"`
	Text       string `bun:"choice_text"`
	Correct    bool   `bun:"is_correct"`
	Order      int    `bun:"order"`
}

// SeedReport describes what Seed wrote.
type SeedReport struct {
	Inserted bool
	QuizIDs  []int64
}

// Seed inserts the catalog in one transaction. It is a no-op when any course
// already exists, so it is safe to run on every deploy.
func Seed(ctx context.Context, db *bun.DB, data seed.Catalog) (SeedReport, error) {
	count, err := db.NewSelect().Model((*courseRow)(nil)).Count(ctx)
	if err != nil {
		return SeedReport{}, fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return SeedReport{}, nil
	}

	var quizIDs []int64

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, sc := range data.Courses {
			course := &courseRow{
				Title:       sc.Title,
				Description: sc.Description,
				Slug:        sc.Slug,
				Level:       sc.Level,
				Duration:    sc.Duration,
				Icon:        sc.Icon,
				Image:       sc.Image,
			}
			if _, err := tx.NewInsert().Model(course).Exec(ctx); err != nil {
				return fmt.Errorf("insert course %s: %w", sc.Slug, err)
			}
			for _, sp := range sc.PDFs {
				if err := insertPDF(ctx, tx, sp, &course.ID); err != nil {
					return err
				}
			}
			for _, sq := range sc.Quizzes {
				id, err := insertQuiz(ctx, tx, sq, course.ID)
				if err != nil {
					return err
				}
				quizIDs = append(quizIDs, id)
			}
		}
		for _, sp := range data.PDFs {
			if err := insertPDF(ctx, tx, sp, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}
	return SeedReport{Inserted: true, QuizIDs: quizIDs}, nil
}

func insertPDF(ctx context.Context, tx bun.Tx, sp seed.PDF, courseID *int64) error {
	row := &pdfRow{
		Title:       sp.Title,
		Description: sp.Description,
		Filename:    sp.Filename,
		FilePath:    sp.FilePath,
		CourseID:    courseID,
	}
	if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert pdf %s: %w", sp.Filename, err)
	}
	return nil
}

func insertQuiz(ctx context.Context, tx bun.Tx, sq seed.Quiz, courseID int64) (int64, error) {
	quiz := &quizRow{
		Title:        sq.Title,
		Description:  sq.Description,
		CourseID:     &courseID,
		TimeLimit:    sq.TimeLimit,
		PassingScore: sq.PassingScore,
	}
	if _, err := tx.NewInsert().Model(quiz).Exec(ctx); err != nil {
		return 0, fmt.Errorf("insert quiz %s: %w", sq.Title, err)
	}
	for order, sqn := range sq.Questions {
		question := &questionRow{QuizID: quiz.ID, Text: sqn.Text, Order: order}
		if _, err := tx.NewInsert().Model(question).Exec(ctx); err != nil {
			return 0, fmt.Errorf("insert question: %w", err)
		}
		choices := make([]choiceRow, 0, len(sqn.Choices))
		for corder, sch := range sqn.Choices {
			choices = append(choices, choiceRow{
				QuestionID: question.ID,
				Text:       sch.Text,
				Correct:    sch.Correct,
				Order:      corder,
			})
		}
		if len(choices) == 0 {
			continue
		}
		if _, err := tx.NewInsert().Model(&choices).Exec(ctx); err != nil {
			return 0, fmt.Errorf("insert choices: %w", err)
		}
	}
	return quiz.ID, nil
}
