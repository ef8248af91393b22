package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	if s.runner.Phase() != sess.PhaseInProgress {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  集計中...")
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question display.
func (s *QuizScreen) renderQuestionView(width int) string {
	var b strings.Builder

	elapsed := s.runner.ElapsedSeconds()
	timerStr := fmt.Sprintf("%d:%02d", elapsed/60, elapsed%60)

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  問題 %d/%d", s.runner.Index()+1, s.runner.Len()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s",
			lipgloss.NewStyle().Foreground(theme.Success).Render("正解"),
			s.runner.Score(),
			timerStr,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	var answer string
	if s.mcActive {
		answer = s.mc.View()
	} else {
		answer = s.mb.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answer))

	return b.String()
}

// renderFeedback renders the feedback overlay after an answer.
func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("正解！"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("不正解"))
	}
	b.WriteString("\n\n")

	// The submitted component shows the correct choice highlighted.
	var answer string
	if s.mcActive {
		answer = s.mc.View()
	} else {
		answer = s.mb.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answer))
	b.WriteString("\n")

	if item, ok := s.runner.Current(); ok && item.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(item.Explanation)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("何かキーを押して次へ..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("演習を中断しますか？"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("ここまでの回答は保存されています。"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] 中断して結果を見る"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] 続ける"))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
