package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	"github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/ui/layout"
	"github.com/ymatsui/kijun/internal/ui/theme"
)

// SummaryScreen displays the result of a finished session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "結果"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "ホームへ"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("演習終了！"))
	b.WriteString("\n\n")

	if sum.Total == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(emptyMessage(sum.Mode)))
		return b.String()
	}

	// Score line with the encouragement band.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d問中 %d問正解（%d%%）", sum.Total, sum.Score, sum.Percentage)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(session.ResultMessage(sum.Percentage)))
	b.WriteString("\n\n")

	timerStr := fmt.Sprintf("%d:%02d", sum.ElapsedSeconds/60, sum.ElapsedSeconds%60)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("所要時間 %s", timerStr)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// Per-question results.
	for _, rec := range sum.History {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !rec.IsCorrect {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		question := rec.Item.Question
		if w := min(width-12, 64); lipgloss.Width(question) > w {
			question = truncate(question, w)
		}
		line := fmt.Sprintf("  %s  %s", mark, question)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// emptyMessage explains a session that had nothing to drill.
func emptyMessage(mode session.Mode) string {
	switch mode {
	case session.ModeWeakPoint:
		return "苦手な問題はありません。全問正解の状態です！"
	case session.ModeCategory:
		return "この分野には問題がありません。"
	default:
		return "出題できる問題がありません。"
	}
}

// truncate shortens a string to at most w display cells.
func truncate(s string, w int) string {
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > w-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
