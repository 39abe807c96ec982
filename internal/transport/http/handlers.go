package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/metrics"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the catalog and quiz-taking endpoints.
type Handler struct {
	quizzes *app.QuizService
	catalog *app.CatalogService
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewHandler(quizzes *app.QuizService, catalog *app.CatalogService, log *zap.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Handler{quizzes: quizzes, catalog: catalog, log: log, metrics: m}
}

type choiceView struct {
	ID    int64  `json:"id"`
	Text  string `json:"choice_text"`
	Order int    `json:"order"`
}

type questionView struct {
	ID      int64        `json:"id"`
	Text    string       `json:"question_text"`
	Order   int          `json:"order"`
	Choices []choiceView `json:"choices"`
}

// quizView is the client-facing quiz; it never carries correct flags.
type quizView struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	CourseID     *int64         `json:"course"`
	TimeLimit    int            `json:"time_limit"`
	PassingScore int            `json:"passing_score"`
	Questions    []questionView `json:"questions"`
	CreatedAt    time.Time      `json:"created_at"`
}

func newQuizView(q domain.Quiz) quizView {
	view := quizView{
		ID:           q.ID,
		Title:        q.Title,
		Description:  q.Description,
		CourseID:     q.CourseID,
		TimeLimit:    q.TimeLimit,
		PassingScore: q.PassingScore,
		Questions:    make([]questionView, 0, len(q.Questions)),
		CreatedAt:    q.CreatedAt,
	}
	for _, question := range q.Questions {
		qv := questionView{ID: question.ID, Text: question.Text, Order: question.Order, Choices: make([]choiceView, 0, len(question.Choices))}
		for _, c := range question.Choices {
			qv.Choices = append(qv.Choices, choiceView{ID: c.ID, Text: c.Text, Order: c.Order})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.Courses(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalog.Course(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) ListPDFs(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseFilter(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	pdfs, err := h.catalog.PDFs(r.Context(), courseID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, pdfs)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseFilter(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	quizzes, err := h.catalog.Quizzes(r.Context(), courseID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathQuizID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	quiz, err := h.quizzes.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuizView(quiz))
}

// SubmitQuiz grades the caller's answers and records the attempt.
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errUnauthenticated.Error()})
		return
	}
	quizID, err := pathQuizID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	req, err := decodeSubmitRequest(r.Body)
	if err != nil {
		writeError(w, h.log, h.rejectMalformed(r.Context(), quizID, err))
		return
	}
	result, err := h.grade(r.Context(), user, quizID, req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errUnauthenticated.Error()})
		return
	}
	attempts, err := h.quizzes.Attempts(r.Context(), user)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

// grade is shared by the HTTP and websocket transports.
func (h *Handler) grade(ctx context.Context, user domain.User, quizID int64, req submitRequest) (domain.GradingResult, error) {
	sub, err := req.normalize()
	var result domain.GradingResult
	if err == nil {
		result, err = h.quizzes.Submit(ctx, user, quizID, sub)
	} else {
		err = h.rejectMalformed(ctx, quizID, err)
	}
	if err != nil {
		_, outcome := classify(err)
		h.metrics.ObserveGrading(outcome, 0)
		h.log.Info("quiz submission rejected",
			zap.Int64("user_id", user.ID), zap.Int64("quiz_id", quizID), zap.String("outcome", outcome), zap.Error(err))
		return domain.GradingResult{}, err
	}
	h.metrics.ObserveGrading(metrics.OutcomeGraded, result.Score)
	h.log.Info("quiz graded",
		zap.Int64("user_id", user.ID),
		zap.Int64("quiz_id", quizID),
		zap.Int64("attempt_id", result.AttemptID),
		zap.Int("score", result.Score),
		zap.Bool("passed", result.Passed))
	return result, nil
}

// rejectMalformed reports a load failure ahead of a malformed submission, so an
// unknown quiz is a 404 whatever the body holds.
func (h *Handler) rejectMalformed(ctx context.Context, quizID int64, err error) error {
	if _, loadErr := h.quizzes.GetQuiz(ctx, quizID); loadErr != nil {
		return loadErr
	}
	return err
}

func pathQuizID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrQuizNotFound
	}
	return id, nil
}

func courseFilter(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("course")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &domain.ValidationError{Reason: "course must be an integer"}
	}
	return &id, nil
}
