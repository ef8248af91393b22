package session

// Summary is the immutable result of a finished session, handed to the
// summary screen.
type Summary struct {
	Mode           Mode
	Total          int
	Score          int
	Percentage     int
	ElapsedSeconds int
	History        []AnswerRecord
}

// BuildSummary captures the runner's final state.
func BuildSummary(r *Runner) Summary {
	return Summary{
		Mode:           r.params.Mode,
		Total:          len(r.history),
		Score:          r.score,
		Percentage:     r.Percentage(),
		ElapsedSeconds: r.elapsedSecs,
		History:        r.History(),
	}
}

// ResultMessage returns the encouragement line for a final percentage.
func ResultMessage(percentage int) string {
	switch {
	case percentage >= 80:
		return "素晴らしい成績です！"
	case percentage >= 50:
		return "良い調子ですね！"
	default:
		return "もう少し頑張りましょう！"
	}
}
