package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/kaisetsu"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	"github.com/ymatsui/kijun/internal/screens/mypage"
	sessionscreen "github.com/ymatsui/kijun/internal/screens/session"
	"github.com/ymatsui/kijun/internal/screens/standards"
	sess "github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/stats"
	"github.com/ymatsui/kijun/internal/ui/components"
	"github.com/ymatsui/kijun/internal/userdata"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	cat  *catalog.Catalog
	data *userdata.Store
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(cat *catalog.Catalog, data *userdata.Store, ai *kaisetsu.Service) *HomeScreen {
	h := &HomeScreen{cat: cat, data: data}

	startSession := func(params sess.Params) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(params, cat, data)}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "問題道場（10問）", Action: startSession(sess.Params{Mode: sess.ModeFixedCount, Count: 10})},
		{Label: "問題道場（30問）", Action: startSession(sess.Params{Mode: sess.ModeFixedCount, Count: 30})},
		{Label: "問題道場（50問）", Action: startSession(sess.Params{Mode: sess.ModeFixedCount, Count: 50})},
		{Label: "弱点克服", Action: startSession(sess.Params{Mode: sess.ModeWeakPoint})},
		{Label: "分野別演習", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newCategoryPicker(cat, data)}
			}
		}},
		{Label: "基準一覧", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: standards.New(cat, data, ai)}
			}
		}},
		{Label: "マイページ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: mypage.New(cat, data)}
			}
		}},
		{Label: "終了", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))
	sections = append(sections, components.Card(h.renderStats(cw), cw))
	sections = append(sections, components.HighlightCard(strings.TrimRight(h.menu.View(), "\n"), cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "ホーム"
}

// renderStats summarizes overall learning progress for the stats card.
func (h *HomeScreen) renderStats(cw int) string {
	o := stats.BuildOverview(h.cat, h.data.Results())
	return fmt.Sprintf("習得 %d/%d 基準    回答済み %d問    苦手 %d問",
		o.MasteredStandards, o.TotalStandards, o.AnsweredQuizzes, o.WeakQuizzes)
}
