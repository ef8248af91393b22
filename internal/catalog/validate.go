package catalog

import (
	"fmt"
	"strings"
)

// validateContent performs all structural checks on the content set.
// Returns a combined error describing all problems found, or nil if valid.
func validateContent(standards []Standard, quizzes []QuizItem) error {
	var errs []string

	stdIDs := make(map[string]bool, len(standards))
	for _, s := range standards {
		if s.ID == "" {
			errs = append(errs, "standard with empty ID")
			continue
		}
		if stdIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate standard ID: %q", s.ID))
		}
		stdIDs[s.ID] = true

		switch s.Importance {
		case ImportanceA, ImportanceB, ImportanceC:
		default:
			errs = append(errs, fmt.Sprintf("standard %q: invalid importance %q", s.ID, s.Importance))
		}
		if s.Title == "" {
			errs = append(errs, fmt.Sprintf("standard %q: empty title", s.ID))
		}
	}

	quizIDs := make(map[string]bool, len(quizzes))
	for _, q := range quizzes {
		if q.ID == "" {
			errs = append(errs, "quiz with empty ID")
			continue
		}
		if quizIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate quiz ID: %q", q.ID))
		}
		quizIDs[q.ID] = true

		if !stdIDs[q.StandardID] {
			errs = append(errs, fmt.Sprintf("quiz %q references nonexistent standard %q", q.ID, q.StandardID))
		}
		if q.Question == "" {
			errs = append(errs, fmt.Sprintf("quiz %q: empty question", q.ID))
		}

		switch q.Kind {
		case KindMarubatsu:
			if len(q.Options) != 0 {
				errs = append(errs, fmt.Sprintf("quiz %q: marubatsu quiz must not carry options", q.ID))
			}
		case KindFillIn:
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("quiz %q: fill-in quiz needs at least 2 options, got %d", q.ID, len(q.Options)))
			}
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("quiz %q: answer index %d out of range for %d options", q.ID, q.AnswerIndex, len(q.Options)))
			}
		default:
			errs = append(errs, fmt.Sprintf("quiz %q: unknown kind %q", q.ID, q.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
