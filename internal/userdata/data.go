package userdata

// QuizResults maps a quiz ID to the correctness of the last submitted
// answer. Only the latest answer per quiz is kept.
type QuizResults map[string]bool

// Data is the full per-account persisted state. It mirrors the document
// shape stored remotely: bookmarks, quiz results and viewed standards
// travel together in one document.
type Data struct {
	BookmarkedStandardIDs []string    `json:"bookmarkedStandardIds"`
	QuizResults           QuizResults `json:"quizResults"`
	ViewedStandardIDs     []string    `json:"viewedStandardIds"`
}

// Empty returns a Data value with all fields at their empty defaults.
func Empty() Data {
	return Data{
		BookmarkedStandardIDs: []string{},
		QuizResults:           QuizResults{},
		ViewedStandardIDs:     []string{},
	}
}

// Coerce replaces nil fields with their empty defaults. Remote documents
// written by older builds (or corrupted by hand) may be missing fields;
// a malformed field never fails the whole load.
func Coerce(d Data) Data {
	if d.BookmarkedStandardIDs == nil {
		d.BookmarkedStandardIDs = []string{}
	}
	if d.QuizResults == nil {
		d.QuizResults = QuizResults{}
	}
	if d.ViewedStandardIDs == nil {
		d.ViewedStandardIDs = []string{}
	}
	return d
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := Data{
		BookmarkedStandardIDs: make([]string, len(d.BookmarkedStandardIDs)),
		QuizResults:           make(QuizResults, len(d.QuizResults)),
		ViewedStandardIDs:     make([]string, len(d.ViewedStandardIDs)),
	}
	copy(out.BookmarkedStandardIDs, d.BookmarkedStandardIDs)
	copy(out.ViewedStandardIDs, d.ViewedStandardIDs)
	for k, v := range d.QuizResults {
		out.QuizResults[k] = v
	}
	return out
}
