package session

import (
	"time"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/userdata"
)

// Phase is the coarse state of a session run.
type Phase int

const (
	PhaseLoading    Phase = iota // created, not yet started
	PhaseInProgress              // serving questions
	PhaseFinished                // all questions answered (or nothing to serve)
)

// ResultRecorder is the slice of the user-data store the runner needs:
// reading the cumulative record when building drills, and recording each
// answer as it happens. *userdata.Store satisfies it.
type ResultRecorder interface {
	Results() userdata.QuizResults
	SetResult(quizID string, isCorrect bool)
}

// AnswerRecord is one entry in a session's replayable history.
type AnswerRecord struct {
	Item      catalog.QuizItem
	IsCorrect bool
}

// Runner steps through an ordered list of quiz items one at a time.
// Within the current item it is either unattempted or attempted; a
// second answer for the same item is ignored, so a question can never
// be scored twice. Not safe for concurrent use; it belongs to a single
// session screen.
type Runner struct {
	params  Params
	catalog *catalog.Catalog
	record  ResultRecorder
	now     func() time.Time

	items       []catalog.QuizItem
	index       int
	score       int
	history     []AnswerRecord
	attempted   bool
	phase       Phase
	startedAt   time.Time
	elapsedSecs int
}

// NewRunner creates a runner in PhaseLoading. Call Start to begin.
func NewRunner(p Params, cat *catalog.Catalog, record ResultRecorder, now func() time.Time) *Runner {
	if now == nil {
		now = time.Now
	}
	return &Runner{
		params:  p,
		catalog: cat,
		record:  record,
		now:     now,
		phase:   PhaseLoading,
	}
}

// Start builds the session's item list and resets all run state. An
// empty selection finishes immediately: the caller shows a "nothing to
// do" result rather than an error.
func (r *Runner) Start() {
	r.items = Build(r.params, r.catalog, r.record.Results())
	r.index = 0
	r.score = 0
	r.history = nil
	r.attempted = false
	r.elapsedSecs = 0
	r.startedAt = r.now()

	if len(r.items) == 0 {
		r.phase = PhaseFinished
		return
	}
	r.phase = PhaseInProgress
}

// Restart rebuilds the session from its original parameters. A
// weak-point drill restarted after answers were recorded picks up the
// updated record.
func (r *Runner) Restart() {
	r.Start()
}

// Current returns the active quiz item. ok is false when the session is
// not in progress.
func (r *Runner) Current() (catalog.QuizItem, bool) {
	if r.phase != PhaseInProgress || r.index >= len(r.items) {
		return catalog.QuizItem{}, false
	}
	return r.items[r.index], true
}

// SubmitAnswer records the outcome for the current item. It reports
// whether the submission was accepted; repeat submissions for the same
// item, and submissions outside an active run, are ignored.
func (r *Runner) SubmitAnswer(isCorrect bool) bool {
	if r.phase != PhaseInProgress || r.attempted {
		return false
	}
	item, ok := r.Current()
	if !ok {
		return false
	}

	if isCorrect {
		r.score++
	}
	r.history = append(r.history, AnswerRecord{Item: item, IsCorrect: isCorrect})
	r.record.SetResult(item.ID, isCorrect)
	r.attempted = true
	return true
}

// Advance moves past an attempted item to the next one, or finishes the
// session when none remain. It reports whether anything happened; calls
// before the current item was attempted are ignored.
func (r *Runner) Advance() bool {
	if r.phase != PhaseInProgress || !r.attempted {
		return false
	}
	if r.index < len(r.items)-1 {
		r.index++
		r.attempted = false
	} else {
		r.phase = PhaseFinished
	}
	return true
}

// Tick advances the elapsed-seconds counter. The caller drives it from
// a once-per-second timer; ticks outside PhaseInProgress are dropped,
// which pauses the clock while loading or finished.
func (r *Runner) Tick() {
	if r.phase == PhaseInProgress {
		r.elapsedSecs++
	}
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Attempted reports whether the current item has been answered.
func (r *Runner) Attempted() bool {
	return r.attempted
}

// Index returns the zero-based position of the current item.
func (r *Runner) Index() int {
	return r.index
}

// Len returns the number of items in this session.
func (r *Runner) Len() int {
	return len(r.items)
}

// Score returns the number of correct answers so far.
func (r *Runner) Score() int {
	return r.score
}

// History returns the answers submitted so far, in order.
func (r *Runner) History() []AnswerRecord {
	out := make([]AnswerRecord, len(r.history))
	copy(out, r.history)
	return out
}

// ElapsedSeconds returns the accumulated in-progress time.
func (r *Runner) ElapsedSeconds() int {
	return r.elapsedSecs
}

// StartedAt returns when the current run began.
func (r *Runner) StartedAt() time.Time {
	return r.startedAt
}

// Percentage returns the final score as a rounded percentage of the
// answers actually submitted. An empty history is 0%.
func (r *Runner) Percentage() int {
	if len(r.history) == 0 {
		return 0
	}
	return int(float64(r.score)/float64(len(r.history))*100 + 0.5)
}

// ProgressRatio returns the in-run progress for display, counting the
// current item once attempted. Display-only; mastery statistics are
// computed from the result record, never from this.
func (r *Runner) ProgressRatio() float64 {
	if len(r.items) == 0 {
		return 0
	}
	done := r.index
	if r.attempted {
		done++
	}
	if r.phase == PhaseFinished {
		done = len(r.items)
	}
	return float64(done) / float64(len(r.items))
}
