package session

import (
	"testing"
	"time"

	"github.com/ymatsui/kijun/internal/userdata"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
}

func TestRunner_FullSession(t *testing.T) {
	cat := buildCatalog(t, 5)
	store := userdata.NewStore()

	r := NewRunner(Params{Mode: ModeFixedCount, Count: 3}, cat, store, fixedNow)
	if r.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", r.Phase())
	}

	r.Start()
	if r.Phase() != PhaseInProgress {
		t.Fatalf("phase = %v, want in-progress", r.Phase())
	}
	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}

	// Answer 1 correct, 2 incorrect, 3 correct.
	answers := []bool{true, false, true}
	var answeredIDs []string
	for i, correct := range answers {
		item, ok := r.Current()
		if !ok {
			t.Fatalf("no current item at step %d", i)
		}
		answeredIDs = append(answeredIDs, item.ID)

		if !r.SubmitAnswer(correct) {
			t.Fatalf("SubmitAnswer rejected at step %d", i)
		}
		if !r.Advance() {
			t.Fatalf("Advance rejected at step %d", i)
		}
	}

	if r.Phase() != PhaseFinished {
		t.Errorf("phase = %v, want finished", r.Phase())
	}
	if r.Score() != 2 {
		t.Errorf("score = %d, want 2", r.Score())
	}
	if r.Percentage() != 67 {
		t.Errorf("percentage = %d, want 67", r.Percentage())
	}
	if len(r.History()) != 3 {
		t.Errorf("history len = %d, want 3", len(r.History()))
	}

	// The store holds exactly the three answered ids with the values given.
	results := store.Results()
	if len(results) != 3 {
		t.Fatalf("store has %d results, want 3: %v", len(results), results)
	}
	for i, id := range answeredIDs {
		if got, ok := results[id]; !ok || got != answers[i] {
			t.Errorf("results[%s] = %v, %v; want %v", id, got, ok, answers[i])
		}
	}
}

func TestRunner_DuplicateSubmissionIgnored(t *testing.T) {
	cat := buildCatalog(t, 3)
	store := userdata.NewStore()

	r := NewRunner(Params{Mode: ModeFixedCount, Count: 3}, cat, store, fixedNow)
	r.Start()

	if !r.SubmitAnswer(true) {
		t.Fatal("first submission rejected")
	}
	if r.SubmitAnswer(true) {
		t.Error("second submission for the same item accepted")
	}
	if r.Score() != 1 {
		t.Errorf("score = %d, want 1", r.Score())
	}
	if len(r.History()) != 1 {
		t.Errorf("history len = %d, want 1", len(r.History()))
	}
}

func TestRunner_AdvanceRequiresAttempt(t *testing.T) {
	cat := buildCatalog(t, 3)
	r := NewRunner(Params{Mode: ModeFixedCount, Count: 3}, cat, userdata.NewStore(), fixedNow)
	r.Start()

	if r.Advance() {
		t.Error("Advance accepted before an answer")
	}
	if r.Index() != 0 {
		t.Errorf("index = %d, want 0", r.Index())
	}
}

func TestRunner_SubmitAfterFinishIgnored(t *testing.T) {
	cat := buildCatalog(t, 1)
	r := NewRunner(Params{Mode: ModeFixedCount, Count: 1}, cat, userdata.NewStore(), fixedNow)
	r.Start()

	r.SubmitAnswer(true)
	r.Advance()

	if r.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished", r.Phase())
	}
	if r.SubmitAnswer(false) {
		t.Error("submission accepted after finish")
	}
	if r.Score() != 1 {
		t.Errorf("score = %d, want 1", r.Score())
	}
}

func TestRunner_EmptySelectionFinishesImmediately(t *testing.T) {
	cat := buildCatalog(t, 5)
	// Weak-point drill with nothing answered incorrectly.
	r := NewRunner(Params{Mode: ModeWeakPoint}, cat, userdata.NewStore(), fixedNow)
	r.Start()

	if r.Phase() != PhaseFinished {
		t.Errorf("phase = %v, want finished", r.Phase())
	}
	if r.Percentage() != 0 {
		t.Errorf("percentage = %d, want 0", r.Percentage())
	}
	if _, ok := r.Current(); ok {
		t.Error("Current() returned an item for an empty session")
	}
}

func TestRunner_TickOnlyWhileInProgress(t *testing.T) {
	cat := buildCatalog(t, 1)
	r := NewRunner(Params{Mode: ModeFixedCount, Count: 1}, cat, userdata.NewStore(), fixedNow)

	r.Tick() // loading: dropped
	r.Start()
	r.Tick()
	r.Tick()
	r.SubmitAnswer(true)
	r.Advance()
	r.Tick() // finished: dropped

	if got := r.ElapsedSeconds(); got != 2 {
		t.Errorf("elapsed = %d, want 2", got)
	}
}

func TestRunner_RestartRebuildsWeakPointDrill(t *testing.T) {
	cat := buildCatalog(t, 4)
	store := userdata.NewStore()
	store.SetResult("q0", false)
	store.SetResult("q1", false)

	r := NewRunner(Params{Mode: ModeWeakPoint}, cat, store, fixedNow)
	r.Start()
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}

	// Answer both correctly; the record now has no weak points.
	for r.Phase() == PhaseInProgress {
		r.SubmitAnswer(true)
		r.Advance()
	}

	r.Restart()
	if r.Len() != 0 {
		t.Errorf("restarted drill len = %d, want 0", r.Len())
	}
	if r.Phase() != PhaseFinished {
		t.Errorf("restarted drill phase = %v, want finished", r.Phase())
	}
}

func TestRunner_ProgressRatio(t *testing.T) {
	cat := buildCatalog(t, 2)
	r := NewRunner(Params{Mode: ModeFixedCount, Count: 2}, cat, userdata.NewStore(), fixedNow)
	r.Start()

	if got := r.ProgressRatio(); got != 0 {
		t.Errorf("ratio = %v, want 0", got)
	}
	r.SubmitAnswer(true)
	if got := r.ProgressRatio(); got != 0.5 {
		t.Errorf("ratio after attempt = %v, want 0.5", got)
	}
	r.Advance()
	r.SubmitAnswer(true)
	r.Advance()
	if got := r.ProgressRatio(); got != 1 {
		t.Errorf("ratio at finish = %v, want 1", got)
	}
}

func TestBuildSummary(t *testing.T) {
	cat := buildCatalog(t, 3)
	r := NewRunner(Params{Mode: ModeFixedCount, Count: 3}, cat, userdata.NewStore(), fixedNow)
	r.Start()
	r.Tick()
	r.SubmitAnswer(true)
	r.Advance()
	r.SubmitAnswer(false)
	r.Advance()
	r.SubmitAnswer(false)
	r.Advance()

	sum := BuildSummary(r)
	if sum.Total != 3 || sum.Score != 1 || sum.Percentage != 33 || sum.ElapsedSeconds != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.History) != 3 {
		t.Errorf("history len = %d, want 3", len(sum.History))
	}
}

func TestResultMessage_Bands(t *testing.T) {
	if ResultMessage(0) == ResultMessage(100) {
		t.Error("bands not distinguished")
	}
	if ResultMessage(49) != ResultMessage(0) {
		t.Error("49 should fall in the lowest band")
	}
	if ResultMessage(80) != ResultMessage(100) {
		t.Error("80 should fall in the top band")
	}
}
