package standards

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/kaisetsu"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	"github.com/ymatsui/kijun/internal/stats"
	"github.com/ymatsui/kijun/internal/ui/components"
	"github.com/ymatsui/kijun/internal/ui/layout"
	"github.com/ymatsui/kijun/internal/ui/theme"
	"github.com/ymatsui/kijun/internal/userdata"
)

// commentaryMsg delivers the result of an AI commentary request.
type commentaryMsg struct {
	Commentary *kaisetsu.Commentary
	Err        error
}

// DetailScreen shows one standard with its learning stats and actions.
type DetailScreen struct {
	std  catalog.Standard
	cat  *catalog.Catalog
	data *userdata.Store
	ai   *kaisetsu.Service

	resetConfirm bool

	aiLoading    bool
	aiCommentary *kaisetsu.Commentary
	aiErr        string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func newDetail(std catalog.Standard, cat *catalog.Catalog, data *userdata.Store, ai *kaisetsu.Service) *DetailScreen {
	return &DetailScreen{std: std, cat: cat, data: data, ai: ai}
}

// Init marks the standard as viewed.
func (d *DetailScreen) Init() tea.Cmd {
	d.data.AddViewedStandard(d.std.ID)
	return nil
}

func (d *DetailScreen) Title() string {
	return d.std.ID
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	if d.resetConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "リセットする"},
			{Key: "N", Description: "やめる"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "B", Description: "ブックマーク"},
		{Key: "R", Description: "成績リセット"},
	}
	if d.ai != nil {
		hints = append(hints, layout.KeyHint{Key: "A", Description: "AI解説"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "戻る"})
	return hints
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case commentaryMsg:
		d.aiLoading = false
		if msg.Err != nil {
			d.aiErr = "AI解説を取得できませんでした"
			return d, nil
		}
		d.aiCommentary = msg.Commentary
		return d, nil

	case tea.KeyMsg:
		key := msg.String()

		if d.resetConfirm {
			switch key {
			case "y", "Y":
				d.data.ResetForStandard(d.std.ID, d.cat)
				d.resetConfirm = false
			case "n", "N", "esc":
				d.resetConfirm = false
			}
			return d, nil
		}

		switch key {
		case "b", "B":
			d.data.ToggleBookmark(d.std.ID)
		case "r", "R":
			d.resetConfirm = true
		case "a", "A":
			return d, d.requestCommentary()
		case "esc":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return d, nil
}

// requestCommentary fetches AI commentary asynchronously.
func (d *DetailScreen) requestCommentary() tea.Cmd {
	if d.ai == nil || d.aiLoading {
		return nil
	}
	d.aiLoading = true
	d.aiErr = ""

	std, cat, data, ai := d.std, d.cat, d.data, d.ai
	return func() tea.Msg {
		c, err := ai.Generate(context.Background(), std, cat, data.Results())
		return commentaryMsg{Commentary: c, Err: err}
	}
}

func (d *DetailScreen) View(width, height int) string {
	if d.resetConfirm {
		return d.renderResetConfirm(width)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	// Title line with bookmark state.
	bookmark := ""
	if d.data.IsBookmarked(d.std.ID) {
		bookmark = lipgloss.NewStyle().Foreground(theme.Accent).Render(" ★")
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", d.std.ID, d.std.Title)))
	b.WriteString(bookmark)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  重要度 %s", d.std.Importance)))
	b.WriteString("\n\n")

	// Standard text.
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		PaddingLeft(2).
		Render(d.std.Content))
	b.WriteString("\n\n")

	if d.std.Commentary != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  解説"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Foreground(theme.TextDim).
			PaddingLeft(2).
			Render(d.std.Commentary))
		b.WriteString("\n\n")
	}

	// Learning stats.
	st := stats.ForStandard(d.std.ID, d.cat, d.data.Results())
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  学習状況"))
	if st.IsMastered {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("  習得済み"))
	}
	b.WriteString("\n")

	barWidth := min(cw-4, 50)
	b.WriteString("  " + components.NewProgressBar("進捗", float64(st.Progress)/100, true, barWidth).View())
	b.WriteString("\n")
	b.WriteString("  " + components.NewProgressBar("正答", float64(st.Accuracy)/100, true, barWidth).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d問中 %d問回答、%d問正解", st.TotalQuizzes, st.AnsweredQuizzes, st.CorrectQuizzes)))
	b.WriteString("\n")

	// AI commentary block.
	if d.aiLoading {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  AI解説を生成中..."))
		b.WriteString("\n")
	} else if d.aiErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + d.aiErr))
		b.WriteString("\n")
	} else if d.aiCommentary != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render("  AI解説"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(d.aiCommentary.Summary))
		b.WriteString("\n")
		for _, p := range d.aiCommentary.KeyPoints {
			b.WriteString(lipgloss.NewStyle().
				Width(cw).
				Foreground(theme.Text).
				PaddingLeft(2).
				Render("・" + p))
			b.WriteString("\n")
		}
		if d.aiCommentary.Example != "" {
			b.WriteString(lipgloss.NewStyle().
				Width(cw).
				Foreground(theme.TextDim).
				PaddingLeft(2).
				Render("例: " + d.aiCommentary.Example))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

func (d *DetailScreen) renderResetConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%s の成績をリセットしますか？", d.std.ID)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("この基準の問題の正誤記録がすべて消えます。"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] リセットする"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] やめる"))
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
