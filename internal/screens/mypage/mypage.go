package mypage

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	"github.com/ymatsui/kijun/internal/stats"
	"github.com/ymatsui/kijun/internal/ui/components"
	"github.com/ymatsui/kijun/internal/ui/layout"
	"github.com/ymatsui/kijun/internal/ui/theme"
	"github.com/ymatsui/kijun/internal/userdata"
)

// MyPageScreen shows overall progress, bookmarks, and weak quizzes.
type MyPageScreen struct {
	cat  *catalog.Catalog
	data *userdata.Store
}

var _ screen.Screen = (*MyPageScreen)(nil)
var _ screen.KeyHintProvider = (*MyPageScreen)(nil)

// New creates the my page screen.
func New(cat *catalog.Catalog, data *userdata.Store) *MyPageScreen {
	return &MyPageScreen{cat: cat, data: data}
}

func (m *MyPageScreen) Init() tea.Cmd {
	return nil
}

func (m *MyPageScreen) Title() string {
	return "マイページ"
}

func (m *MyPageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "戻る"},
	}
}

func (m *MyPageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return m, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return m, nil
}

func (m *MyPageScreen) View(width, height int) string {
	d := m.data.Get()
	results := d.QuizResults
	o := stats.BuildOverview(m.cat, results)

	cw := components.ContentWidth(width)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder

	// Overview.
	b.WriteString(sectionStyle.Render("  学習サマリー"))
	b.WriteString("\n")
	masteredRatio := 0.0
	if o.TotalStandards > 0 {
		masteredRatio = float64(o.MasteredStandards) / float64(o.TotalStandards)
	}
	barWidth := min(cw-4, 50)
	b.WriteString("  " + components.NewProgressBar("習得", masteredRatio, true, barWidth).View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"  基準 %d件中 %d件習得   回答済み %d問   苦手 %d問   閲覧済み %d件",
		o.TotalStandards, o.MasteredStandards, o.AnsweredQuizzes, o.WeakQuizzes, len(d.ViewedStandardIDs))))
	b.WriteString("\n\n")

	// Bookmarks.
	b.WriteString(sectionStyle.Render("  ブックマーク"))
	b.WriteString("\n")
	if len(d.BookmarkedStandardIDs) == 0 {
		b.WriteString(dimStyle.Render("  まだありません"))
		b.WriteString("\n")
	} else {
		for _, id := range d.BookmarkedStandardIDs {
			std, ok := m.cat.StandardByID(id)
			if !ok {
				continue
			}
			star := lipgloss.NewStyle().Foreground(theme.Accent).Render("★")
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", star,
				lipgloss.NewStyle().Foreground(theme.Text).Render(std.ID),
				lipgloss.NewStyle().Foreground(theme.Text).Render(std.Title)))
		}
	}
	b.WriteString("\n")

	// Weak quizzes.
	b.WriteString(sectionStyle.Render("  苦手な問題"))
	b.WriteString("\n")
	weak := 0
	for _, q := range m.cat.Quizzes() {
		correct, answered := results[q.ID]
		if !answered || correct {
			continue
		}
		weak++
		mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		question := q.Question
		if w := cw - 8; lipgloss.Width(question) > w {
			question = truncate(question, w)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark,
			lipgloss.NewStyle().Foreground(theme.Text).Render(question)))
	}
	if weak == 0 {
		b.WriteString(dimStyle.Render("  ありません。この調子です！"))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
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
