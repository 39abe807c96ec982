package app

import "course-quiz-service/internal/domain"

// Scorecard is the pure outcome of grading, before an attempt is recorded.
type Scorecard struct {
	Score          int
	TotalQuestions int
	CorrectCount   int
	Passed         bool
	Results        []domain.QuestionResult
}

// Grade scores answers against quiz. It performs no I/O and returns the same
// scorecard for the same inputs.
func Grade(quiz domain.Quiz, answers domain.AnswerSet) (Scorecard, error) {
	total := len(quiz.Questions)
	if total == 0 {
		return Scorecard{}, domain.ErrEmptyQuiz
	}

	card := Scorecard{
		TotalQuestions: total,
		Results:        make([]domain.QuestionResult, 0, total),
	}
	for _, question := range quiz.Questions {
		result := domain.QuestionResult{
			QuestionID:   question.ID,
			QuestionText: question.Text,
		}
		if key := firstCorrectChoice(question); key != nil {
			result.CorrectAnswer = textPtr(key.Text)
		}
		if selected := selectedChoice(question, answers); selected != nil {
			result.UserAnswer = textPtr(selected.Text)
			result.Correct = selected.Correct
		}
		if result.Correct {
			card.CorrectCount++
		}
		card.Results = append(card.Results, result)
	}

	card.Score = card.CorrectCount * 100 / total
	card.Passed = card.Score >= quiz.PassingScore
	return card, nil
}

// selectedChoice resolves the submitted choice only among the question's own choices.
func selectedChoice(question domain.Question, answers domain.AnswerSet) *domain.Choice {
	choiceID, ok := answers[question.ID]
	if !ok || choiceID <= 0 {
		return nil
	}
	for i := range question.Choices {
		if question.Choices[i].ID == choiceID {
			return &question.Choices[i]
		}
	}
	return nil
}

func firstCorrectChoice(question domain.Question) *domain.Choice {
	for i := range question.Choices {
		if question.Choices[i].Correct {
			return &question.Choices[i]
		}
	}
	return nil
}

func textPtr(s string) *string {
	return &s
}
