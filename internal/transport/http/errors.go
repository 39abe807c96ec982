package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/metrics"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// classify maps the domain error taxonomy to an HTTP status and metrics outcome.
func classify(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, metrics.OutcomeNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest, metrics.OutcomeInvalid
	default:
		return http.StatusInternalServerError, metrics.OutcomeStorageError
	}
}

// publicMessage hides storage details from clients.
func publicMessage(status int, err error) errorResponse {
	if status == http.StatusInternalServerError {
		if errors.Is(err, domain.ErrInvalidContent) {
			return errorResponse{Error: "quiz content is invalid", Message: "Failed to process request"}
		}
		return errorResponse{Error: "internal error", Message: "Failed to process request"}
	}
	return errorResponse{Error: err.Error()}
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status, _ := classify(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, publicMessage(status, err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
