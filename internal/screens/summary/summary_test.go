package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Mode:           session.ModeFixedCount,
		Total:          3,
		Score:          2,
		Percentage:     67,
		ElapsedSeconds: 95,
		History: []session.AnswerRecord{
			{Item: catalog.QuizItem{ID: "q1", Question: "管理者の設置は必須である。"}, IsCorrect: true},
			{Item: catalog.QuizItem{ID: "q2", Question: "報告は年一回で足りる。"}, IsCorrect: false},
			{Item: catalog.QuizItem{ID: "q3", Question: "記録は五年間保存する。"}, IsCorrect: true},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "結果" {
		t.Errorf("Title = %q, want %q", s.Title(), "結果")
	}
}

func TestSummaryScreen_ShowsScoreAndMessage(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if !strings.Contains(view, "3問中 2問正解（67%）") {
		t.Errorf("expected score line in view, got:\n%s", view)
	}
	if !strings.Contains(view, session.ResultMessage(67)) {
		t.Error("expected encouragement message in view")
	}
	if !strings.Contains(view, "所要時間 1:35") {
		t.Error("expected elapsed time in view")
	}
}

func TestSummaryScreen_EmptyWeakPointSession(t *testing.T) {
	s := New(session.Summary{Mode: session.ModeWeakPoint})
	view := s.View(80, 24)
	if !strings.Contains(view, "苦手な問題はありません") {
		t.Errorf("expected empty weak-point message, got:\n%s", view)
	}
}

func TestSummaryScreen_EmptyCategorySession(t *testing.T) {
	s := New(session.Summary{Mode: session.ModeCategory})
	view := s.View(80, 24)
	if !strings.Contains(view, "この分野には問題がありません") {
		t.Errorf("expected empty category message, got:\n%s", view)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testSummary())
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Fatalf("expected a command on key %q", code)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg on key %q", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
