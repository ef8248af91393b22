package stats

import (
	"math"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/userdata"
)

// MasteryAccuracyThreshold is the minimum accuracy (in percent) for a
// fully answered standard to count as mastered.
const MasteryAccuracyThreshold = 80

// StandardStats is the derived mastery view of one standard. It is
// recomputed from the result record on every call and never stored.
type StandardStats struct {
	TotalQuizzes    int
	AnsweredQuizzes int
	CorrectQuizzes  int
	Progress        int // 0-100, answered share of all quizzes
	Accuracy        int // 0-100, correct share of answered quizzes
	IsMastered      bool
}

// ForStandard derives the stats for one standard from the catalog and
// the cumulative result record. A standard with no quizzes yields the
// all-zero, non-mastered result.
func ForStandard(standardID string, cat *catalog.Catalog, results userdata.QuizResults) StandardStats {
	quizzes := cat.QuizzesForStandard(standardID)

	s := StandardStats{TotalQuizzes: len(quizzes)}
	if s.TotalQuizzes == 0 {
		return s
	}

	for _, q := range quizzes {
		correct, answered := results[q.ID]
		if !answered {
			continue
		}
		s.AnsweredQuizzes++
		if correct {
			s.CorrectQuizzes++
		}
	}

	s.Progress = roundPercent(s.AnsweredQuizzes, s.TotalQuizzes)
	if s.AnsweredQuizzes > 0 {
		s.Accuracy = roundPercent(s.CorrectQuizzes, s.AnsweredQuizzes)
	}
	s.IsMastered = s.Progress == 100 && s.Accuracy >= MasteryAccuracyThreshold
	return s
}

// Overview aggregates per-standard stats across the whole catalog.
type Overview struct {
	TotalStandards    int
	MasteredStandards int
	WeakQuizzes       int // quizzes whose last answer was incorrect
	AnsweredQuizzes   int
}

// BuildOverview computes the account-wide progress summary.
func BuildOverview(cat *catalog.Catalog, results userdata.QuizResults) Overview {
	o := Overview{}
	for _, std := range cat.Standards() {
		o.TotalStandards++
		if ForStandard(std.ID, cat, results).IsMastered {
			o.MasteredStandards++
		}
	}
	for _, correct := range results {
		o.AnsweredQuizzes++
		if !correct {
			o.WeakQuizzes++
		}
	}
	return o
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
