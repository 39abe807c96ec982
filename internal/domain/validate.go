package domain

import "fmt"

// ValidateQuiz checks that the passing score is a percentage, that every
// question has exactly one correct choice and that choice IDs are unique
// within their question.
func ValidateQuiz(q Quiz) error {
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return fmt.Errorf("%w: passing score %d outside 0-100", ErrInvalidContent, q.PassingScore)
	}
	for _, question := range q.Questions {
		correct := 0
		seen := make(map[int64]struct{}, len(question.Choices))
		for _, c := range question.Choices {
			if _, dup := seen[c.ID]; dup {
				return fmt.Errorf("%w: question %d repeats choice %d", ErrInvalidContent, question.ID, c.ID)
			}
			seen[c.ID] = struct{}{}
			if c.Correct {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: question %d has %d correct choices", ErrInvalidContent, question.ID, correct)
		}
	}
	return nil
}
