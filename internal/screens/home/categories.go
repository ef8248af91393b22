package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	sessionscreen "github.com/ymatsui/kijun/internal/screens/session"
	sess "github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/ui/components"
	"github.com/ymatsui/kijun/internal/ui/theme"
	"github.com/ymatsui/kijun/internal/userdata"
)

// categoryPicker selects a category for a category drill session.
type categoryPicker struct {
	menu components.Menu
}

var _ screen.Screen = (*categoryPicker)(nil)

func newCategoryPicker(cat *catalog.Catalog, data *userdata.Store) *categoryPicker {
	var items []components.MenuItem
	for _, category := range cat.Categories() {
		category := category
		items = append(items, components.MenuItem{
			Label: category,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: sessionscreen.New(sess.Params{Mode: sess.ModeCategory, Category: category}, cat, data),
					}
				}
			},
		})
	}
	return &categoryPicker{menu: components.NewMenu(items)}
}

func (c *categoryPicker) Init() tea.Cmd {
	return nil
}

func (c *categoryPicker) Title() string {
	return "分野別演習"
}

func (c *categoryPicker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *categoryPicker) View(width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("演習する分野を選んでください")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		header+"\n\n"+c.menu.View())
}
