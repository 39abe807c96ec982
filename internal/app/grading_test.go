package app_test

import (
	"errors"
	"testing"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/domain"
)

// buildQuiz returns a quiz with n questions of three choices each. Question i
// has ID i+1; its choices are 10*(i+1)+{1,2,3} and the second one is correct.
func buildQuiz(n, passing int) domain.Quiz {
	quiz := domain.Quiz{ID: 1, Title: "Sample", PassingScore: passing}
	for i := 0; i < n; i++ {
		qid := int64(i + 1)
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:   qid,
			Text: "Question " + string(rune('A'+i)),
			Choices: []domain.Choice{
				{ID: qid*10 + 1, Text: "wrong-1"},
				{ID: qid*10 + 2, Text: "right", Correct: true},
				{ID: qid*10 + 3, Text: "wrong-2"},
			},
		})
	}
	return quiz
}

func allCorrect(quiz domain.Quiz) domain.AnswerSet {
	answers := domain.AnswerSet{}
	for _, q := range quiz.Questions {
		answers[q.ID] = q.ID*10 + 2
	}
	return answers
}

func TestGradeAllCorrect(t *testing.T) {
	for n := 1; n <= 7; n++ {
		quiz := buildQuiz(n, 100)
		card, err := app.Grade(quiz, allCorrect(quiz))
		if err != nil {
			t.Fatalf("n=%d: grade: %v", n, err)
		}
		if card.Score != 100 || !card.Passed || card.CorrectCount != n {
			t.Fatalf("n=%d: expected perfect score, got %+v", n, card)
		}
	}
}

func TestGradeEmptyAnswers(t *testing.T) {
	quiz := buildQuiz(4, 0)
	for _, answers := range []domain.AnswerSet{nil, {}} {
		card, err := app.Grade(quiz, answers)
		if err != nil {
			t.Fatalf("grade: %v", err)
		}
		if card.Score != 0 || card.CorrectCount != 0 {
			t.Fatalf("expected zero score, got %+v", card)
		}
		// A zero passing score is inclusive.
		if !card.Passed {
			t.Fatalf("expected pass with passing score 0")
		}
		for _, r := range card.Results {
			if r.UserAnswer != nil || r.Correct {
				t.Fatalf("expected unanswered result, got %+v", r)
			}
		}
	}
}

func TestGradeIgnoresChoiceFromOtherQuestion(t *testing.T) {
	quiz := buildQuiz(2, 50)
	// Choice 22 is the correct choice of question 2, submitted for question 1.
	card, err := app.Grade(quiz, domain.AnswerSet{1: 22})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if card.CorrectCount != 0 || card.Results[0].Correct || card.Results[0].UserAnswer != nil {
		t.Fatalf("cross-question choice must not count, got %+v", card.Results[0])
	}
}

func TestGradeRoundsDown(t *testing.T) {
	quiz := buildQuiz(3, 67)
	card, err := app.Grade(quiz, domain.AnswerSet{1: 12, 2: 22, 3: 31})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if card.Score != 66 {
		t.Fatalf("expected 66, got %d", card.Score)
	}
	if card.Passed {
		t.Fatalf("66 must not pass a 67 threshold")
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	_, err := app.Grade(domain.Quiz{ID: 1, PassingScore: 0}, domain.AnswerSet{})
	if !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
}

func TestGradeFiveQuestionExample(t *testing.T) {
	quiz := buildQuiz(5, 80)
	answers := domain.AnswerSet{1: 12, 2: 22, 3: 32, 4: 42}

	card, err := app.Grade(quiz, answers)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if card.Score != 80 || card.CorrectCount != 4 || card.TotalQuestions != 5 || !card.Passed {
		t.Fatalf("unexpected scorecard %+v", card)
	}
	if len(card.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(card.Results))
	}
	for i, r := range card.Results {
		if r.QuestionID != int64(i+1) || r.QuestionText != quiz.Questions[i].Text {
			t.Fatalf("result %d out of order: %+v", i, r)
		}
		if r.CorrectAnswer == nil || *r.CorrectAnswer != "right" {
			t.Fatalf("result %d: expected correct answer text, got %v", i, r.CorrectAnswer)
		}
	}
	if last := card.Results[4]; last.UserAnswer != nil || last.Correct {
		t.Fatalf("expected unanswered fifth question, got %+v", last)
	}

	quiz.PassingScore = 81
	card, _ = app.Grade(quiz, answers)
	if card.Passed {
		t.Fatalf("80 must not pass an 81 threshold")
	}
}

func TestGradeMultipleCorrectFlags(t *testing.T) {
	quiz := buildQuiz(1, 100)
	quiz.Questions[0].Choices[2].Correct = true

	card, _ := app.Grade(quiz, domain.AnswerSet{1: 13})
	if !card.Results[0].Correct || card.Score != 100 {
		t.Fatalf("any correct-flagged choice should count, got %+v", card.Results[0])
	}
	if *card.Results[0].CorrectAnswer != "right" {
		t.Fatalf("expected first correct choice as canonical answer, got %q", *card.Results[0].CorrectAnswer)
	}
}

func TestGradeNoCorrectChoice(t *testing.T) {
	quiz := buildQuiz(1, 50)
	quiz.Questions[0].Choices[1].Correct = false

	card, _ := app.Grade(quiz, domain.AnswerSet{1: 12})
	if card.Results[0].CorrectAnswer != nil || card.Results[0].Correct {
		t.Fatalf("expected no correct answer, got %+v", card.Results[0])
	}
	if *card.Results[0].UserAnswer != "right" {
		t.Fatalf("expected submitted text to be reported")
	}
}

func TestGradeIsRepeatable(t *testing.T) {
	quiz := buildQuiz(6, 50)
	answers := domain.AnswerSet{1: 12, 3: 33, 4: 42, 6: 999}
	first, _ := app.Grade(quiz, answers)
	for i := 0; i < 10; i++ {
		again, _ := app.Grade(quiz, answers)
		if again.Score != first.Score || again.CorrectCount != first.CorrectCount {
			t.Fatalf("grading is not deterministic: %+v vs %+v", first, again)
		}
	}
	if first.Score != 33 {
		t.Fatalf("expected 33, got %d", first.Score)
	}
}
