package http

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"course-quiz-service/internal/domain"
)

func TestNormalizeAcceptsStringAndNumericIDs(t *testing.T) {
	req := mustDecode(t, `{"quiz_id": "3", "answers": {"1": 2, "4": "5", "6": 7.0, "x": 1, "8": "nope", "9": 0, "10": null, "11": 2.5}}`)
	sub, err := req.normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if sub.QuizID != 3 {
		t.Fatalf("expected quiz id 3, got %d", sub.QuizID)
	}
	want := domain.AnswerSet{1: 2, 4: 5, 6: 7}
	if len(sub.Answers) != len(want) {
		t.Fatalf("expected %v, got %v", want, sub.Answers)
	}
	for q, c := range want {
		if sub.Answers[q] != c {
			t.Fatalf("question %d: expected %d, got %d", q, c, sub.Answers[q])
		}
	}
}

func TestNormalizeIgnoresNonCanonicalKeys(t *testing.T) {
	body := `{"answers": {"1": 10, "01": 11, " 1": 12, "+1": 13, "2 ": 14}}`
	for i := 0; i < 50; i++ {
		sub, err := mustDecode(t, body).normalize()
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		if len(sub.Answers) != 1 || sub.Answers[1] != 10 {
			t.Fatalf("expected only question 1 -> 10, got %v", sub.Answers)
		}
	}
}

func TestNormalizeQuizID(t *testing.T) {
	cases := []struct {
		body string
		want int64
	}{
		{`{"quiz_id": 0, "answers": {}}`, 0},
		{`{"quiz_id": null, "answers": {}}`, 0},
		{`{"quiz_id": "0", "answers": {}}`, 0},
		{`{"quiz_id": -5, "answers": {}}`, -5},
		{`{"quiz_id": "-2", "answers": {}}`, -2},
		{`{"quiz_id": 4.0, "answers": {}}`, 4},
	}
	for _, tc := range cases {
		sub, err := mustDecode(t, tc.body).normalize()
		if err != nil {
			t.Fatalf("%s: normalize: %v", tc.body, err)
		}
		if sub.QuizID != tc.want {
			t.Fatalf("%s: expected quiz id %d, got %d", tc.body, tc.want, sub.QuizID)
		}
	}

	_, err := mustDecode(t, `{"quiz_id": 1.5, "answers": {}}`).normalize()
	if !errors.Is(err, errInvalidQuizID) {
		t.Fatalf("expected invalid quiz id for 1.5, got %v", err)
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	sub, err := mustDecode(t, `{}`).normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if sub.QuizID != 0 || sub.Answers == nil || len(sub.Answers) != 0 {
		t.Fatalf("expected empty submission, got %+v", sub)
	}
}

func TestNormalizeRejectsNonObjectAnswers(t *testing.T) {
	for _, body := range []string{
		`{"answers": [1, 2]}`,
		`{"answers": "1:2"}`,
		`{"answers": 7}`,
	} {
		_, err := mustDecode(t, body).normalize()
		if !errors.Is(err, domain.ErrAnswersNotObject) {
			t.Fatalf("%s: expected ErrAnswersNotObject, got %v", body, err)
		}
	}
}

func TestNormalizeRejectsBadQuizID(t *testing.T) {
	_, err := mustDecode(t, `{"quiz_id": "abc", "answers": {}}`).normalize()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeRejectsMalformedBody(t *testing.T) {
	if _, err := decodeSubmitRequest(strings.NewReader(`[1,2]`)); !errors.Is(err, errInvalidBody) {
		t.Fatalf("expected invalid body, got %v", err)
	}
}

func mustDecode(t *testing.T, body string) submitRequest {
	t.Helper()
	var req submitRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return req
}
