package session

import (
	"strconv"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/userdata"
)

// Mode selects how a session's quiz items are chosen.
type Mode string

const (
	// ModeFixedCount draws Count random items from the full catalog.
	ModeFixedCount Mode = "fixed-count"
	// ModeWeakPoint drills every quiz currently recorded as answered
	// incorrectly. Unanswered quizzes are excluded.
	ModeWeakPoint Mode = "weak-point"
	// ModeCategory drills every quiz belonging to standards in Category.
	ModeCategory Mode = "category"
)

// DefaultCount is the session length used when no valid count is given.
const DefaultCount = 10

// Params describes a session request. Zero values fall back to a
// DefaultCount fixed-count session.
type Params struct {
	Mode     Mode
	Count    int    // fixed-count only
	Category string // category mode only
}

// ParseParams interprets collaborator-supplied session parameters. An
// unknown mode, or a category mode without a category, falls back to
// fixed-count; a non-positive or unparseable count becomes DefaultCount.
func ParseParams(mode, countStr, category string) Params {
	p := Params{Mode: ModeFixedCount, Count: DefaultCount}

	switch Mode(mode) {
	case ModeWeakPoint:
		p.Mode = ModeWeakPoint
	case ModeCategory:
		if category != "" {
			p.Mode = ModeCategory
			p.Category = category
		}
	}

	if n, err := strconv.Atoi(countStr); err == nil && n > 0 {
		p.Count = n
	}
	return p
}

// Build selects and orders the quiz items for one session. An empty
// result is a valid "nothing to drill" outcome, not an error.
func Build(p Params, cat *catalog.Catalog, results userdata.QuizResults) []catalog.QuizItem {
	switch p.Mode {
	case ModeWeakPoint:
		var source []catalog.QuizItem
		for _, q := range cat.Quizzes() {
			if correct, answered := results[q.ID]; answered && !correct {
				source = append(source, q)
			}
		}
		return Shuffle(source)

	case ModeCategory:
		return Shuffle(cat.QuizzesInCategory(p.Category))

	default:
		count := p.Count
		if count <= 0 {
			count = DefaultCount
		}
		shuffled := Shuffle(cat.Quizzes())
		if count < len(shuffled) {
			shuffled = shuffled[:count]
		}
		return shuffled
	}
}
