package http

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"course-quiz-service/internal/domain"
)

var (
	errInvalidBody   = &domain.ValidationError{Reason: "request body must be a JSON object"}
	errInvalidQuizID = &domain.ValidationError{Reason: "quiz_id must be an integer"}
)

// submitRequest is the wire form of a submission. Fields stay raw so that
// identifiers can arrive as numbers or strings.
type submitRequest struct {
	QuizID  json.RawMessage `json:"quiz_id"`
	Answers json.RawMessage `json:"answers"`
}

func decodeSubmitRequest(body io.Reader) (submitRequest, error) {
	var req submitRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return submitRequest{}, errInvalidBody
	}
	return req, nil
}

// normalize converts the wire form into a domain.Submission with int64 ids.
// Answer keys must be the canonical decimal form of a question id, so "01" or
// " 1" never shadow "1". Entries whose key or value is not a positive integer
// are dropped and therefore graded as unanswered. A quiz_id of 0 counts as
// omitted; any other value is checked against the graded quiz.
func (req submitRequest) normalize() (domain.Submission, error) {
	var sub domain.Submission
	if !isNull(req.QuizID) {
		id, ok := parseID(req.QuizID)
		if !ok {
			return domain.Submission{}, errInvalidQuizID
		}
		sub.QuizID = id
	}

	sub.Answers = domain.AnswerSet{}
	if isNull(req.Answers) {
		return sub, nil
	}
	raw := bytes.TrimSpace(req.Answers)
	if raw[0] != '{' {
		return domain.Submission{}, domain.ErrAnswersNotObject
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return domain.Submission{}, domain.ErrAnswersNotObject
	}
	for key, value := range entries {
		questionID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || questionID <= 0 || strconv.FormatInt(questionID, 10) != key {
			continue
		}
		choiceID, ok := parseID(value)
		if !ok || choiceID <= 0 {
			continue
		}
		sub.Answers[questionID] = choiceID
	}
	return sub, nil
}

// parseID accepts a JSON number or a string holding a base-10 integer.
func parseID(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return id, err == nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if id, err := n.Int64(); err == nil {
		return id, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
