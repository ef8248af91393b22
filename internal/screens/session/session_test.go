package session

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screens/summary"
	sess "github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/userdata"
)

func testCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()

	standards := []catalog.Standard{
		{ID: "s1", Title: "基準1", Importance: catalog.ImportanceA},
	}
	var quizzes []catalog.QuizItem
	for i := 0; i < n; i++ {
		quizzes = append(quizzes, catalog.QuizItem{
			Kind:       catalog.KindMarubatsu,
			ID:         string(rune('a' + i)),
			StandardID: "s1",
			Question:   "?",
			Answer:     i%2 == 0,
		})
	}

	c, err := catalog.New(standards, quizzes)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// answerCurrent answers the current item correctly or not, then
// dismisses the feedback overlay. Returns the command from dismissal.
func answerCurrent(t *testing.T, s *QuizScreen, correctly bool) tea.Cmd {
	t.Helper()

	item, ok := s.runner.Current()
	if !ok {
		t.Fatal("no current item")
	}

	// Select ○ or × so the choice matches (or contradicts) the answer.
	want := item.Answer == correctly
	if want {
		s.handleKey(key('o'))
	} else {
		s.handleKey(key('x'))
	}
	s.handleKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.showingFeedback {
		t.Fatal("feedback overlay not shown after submit")
	}
	if s.lastCorrect != correctly {
		t.Fatalf("lastCorrect = %v, want %v", s.lastCorrect, correctly)
	}

	_, cmd := s.handleKey(key(' '))
	return cmd
}

func TestFullSessionReachesSummary(t *testing.T) {
	cat := testCatalog(t, 2)
	store := userdata.NewStore()
	s := New(sess.Params{Mode: sess.ModeFixedCount, Count: 2}, cat, store)

	if cmd := s.Init(); cmd == nil {
		t.Fatal("Init returned no tick command")
	}
	if s.runner.Phase() != sess.PhaseInProgress {
		t.Fatalf("phase = %v after Init", s.runner.Phase())
	}

	answerCurrent(t, s, true)
	cmd := answerCurrent(t, s, false)
	if cmd == nil {
		t.Fatal("final answer produced no command")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatalf("expected sessionEndMsg, got %T", cmd())
	}

	// The end message replaces the session with the summary screen.
	_, cmd = s.Update(sessionEndMsg{})
	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Fatalf("expected summary screen, got %T", replace.Screen)
	}

	if s.runner.Score() != 1 {
		t.Errorf("score = %d, want 1", s.runner.Score())
	}
	if got := store.Results(); len(got) != 2 {
		t.Errorf("recorded results = %v, want 2 entries", got)
	}
}

func TestEmptySelectionEndsImmediately(t *testing.T) {
	cat := testCatalog(t, 2)
	store := userdata.NewStore() // nothing answered, so no weak points
	s := New(sess.Params{Mode: sess.ModeWeakPoint}, cat, store)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatalf("expected sessionEndMsg, got %T", cmd())
	}
}

func TestQuitConfirm(t *testing.T) {
	cat := testCatalog(t, 3)
	store := userdata.NewStore()
	s := New(sess.Params{Mode: sess.ModeFixedCount, Count: 3}, cat, store)
	s.Init()

	s.handleKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.quitConfirm {
		t.Fatal("esc did not open the quit confirmation")
	}

	// N keeps the session running.
	s.handleKey(key('n'))
	if s.quitConfirm {
		t.Fatal("n did not dismiss the confirmation")
	}
	if s.runner.Phase() != sess.PhaseInProgress {
		t.Fatal("session no longer in progress after resume")
	}

	// Y ends it.
	s.handleKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.handleKey(key('y'))
	if cmd == nil {
		t.Fatal("y produced no command")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatalf("expected sessionEndMsg, got %T", cmd())
	}
}

func TestTickOnlyCountsInProgress(t *testing.T) {
	cat := testCatalog(t, 1)
	store := userdata.NewStore()
	s := New(sess.Params{Mode: sess.ModeFixedCount, Count: 1}, cat, store)
	s.Init()

	s.Update(timerTickMsg{})
	s.Update(timerTickMsg{})
	if s.runner.ElapsedSeconds() != 2 {
		t.Fatalf("elapsed = %d, want 2", s.runner.ElapsedSeconds())
	}

	answerCurrent(t, s, true)
	s.Update(timerTickMsg{})
	if s.runner.ElapsedSeconds() != 2 {
		t.Errorf("elapsed advanced after finish: %d", s.runner.ElapsedSeconds())
	}
}
