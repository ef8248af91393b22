package session

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	"github.com/ymatsui/kijun/internal/screens/summary"
	sess "github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/ui/components"
	"github.com/ymatsui/kijun/internal/ui/layout"
)

// QuizScreen runs one quiz session from first question to summary.
type QuizScreen struct {
	runner *sess.Runner

	mb       components.Marubatsu
	mc       components.MultiChoice
	mcActive bool // true when the current item is fill-in

	showingFeedback bool
	lastCorrect     bool
	quitConfirm     bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. The session is built and started in Init.
func New(params sess.Params, cat *catalog.Catalog, record sess.ResultRecorder) *QuizScreen {
	return &QuizScreen{
		runner: sess.NewRunner(params, cat, record, time.Now),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.runner.Start()
	if s.runner.Phase() == sess.PhaseFinished {
		// Nothing to drill. Straight to the summary.
		return func() tea.Msg { return sessionEndMsg{} }
	}
	s.loadCurrent()
	return tickCmd()
}

func (s *QuizScreen) Title() string {
	return "問題演習"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "中断する"},
			{Key: "N", Description: "続ける"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "次へ"},
		}
	}
	if s.mcActive {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "選択"},
			{Key: "Enter", Description: "回答"},
			{Key: "Esc", Description: "中断"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "○/×"},
		{Key: "Enter", Description: "回答"},
		{Key: "Esc", Description: "中断"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.runner.Phase() != sess.PhaseInProgress {
			return s, nil
		}
		s.runner.Tick()
		return s, tickCmd()

	case sessionEndMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sess.BuildSummary(s.runner))}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	// Feedback overlay: any key advances.
	if s.showingFeedback {
		s.showingFeedback = false
		if !s.runner.Advance() || s.runner.Phase() == sess.PhaseFinished {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		s.loadCurrent()
		return s, nil
	}

	if s.runner.Phase() != sess.PhaseInProgress {
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	// Forward to the active answer component.
	if s.mcActive {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			s.submit(s.mc.IsCorrect())
		}
		return s, cmd
	}
	var cmd tea.Cmd
	s.mb, cmd = s.mb.Update(msg)
	if s.mb.Submitted {
		s.submit(s.mb.IsCorrect())
	}
	return s, cmd
}

// submit records the answer and switches to the feedback overlay.
func (s *QuizScreen) submit(isCorrect bool) {
	if !s.runner.SubmitAnswer(isCorrect) {
		return
	}
	s.lastCorrect = isCorrect
	s.showingFeedback = true
}

// loadCurrent sets up the answer component for the current item.
func (s *QuizScreen) loadCurrent() {
	item, ok := s.runner.Current()
	if !ok {
		return
	}
	switch item.Kind {
	case catalog.KindFillIn:
		s.mcActive = true
		s.mc = components.NewMultiChoice(item.Question, item.Options, item.AnswerIndex)
	default:
		s.mcActive = false
		s.mb = components.NewMarubatsu(item.Question, item.Answer)
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
