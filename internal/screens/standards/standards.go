package standards

import (
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

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowStandard
)

type row struct {
	kind     rowKind
	category string
	std      *catalog.Standard
}

// ListScreen displays all standards grouped by category, with an
// incremental search box.
type ListScreen struct {
	cat  *catalog.Catalog
	data *userdata.Store
	ai   *kaisetsu.Service

	rows         []row
	cursor       int
	scrollOffset int

	searching bool
	search    components.TextInput
	query     string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// New creates the standards list screen.
func New(cat *catalog.Catalog, data *userdata.Store, ai *kaisetsu.Service) *ListScreen {
	s := &ListScreen{
		cat:    cat,
		data:   data,
		ai:     ai,
		search: components.NewTextInput("基準名で検索...", false, 40),
	}
	s.rebuildRows()
	return s
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

func (s *ListScreen) Title() string {
	return "基準一覧"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "確定"},
			{Key: "Esc", Description: "検索解除"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "移動"},
		{Key: "/", Description: "検索"},
		{Key: "Enter", Description: "詳細"},
		{Key: "Esc", Description: "戻る"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.searching {
		switch kmsg.String() {
		case "enter":
			s.searching = false
		case "esc":
			s.searching = false
			s.search = components.NewTextInput("基準名で検索...", false, 40)
			s.query = ""
			s.rebuildRows()
		default:
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			s.query = s.search.Value()
			s.rebuildRows()
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "/":
		s.searching = true
		return s, s.search.Init()
	case "enter":
		return s, s.selectStandard()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// rebuildRows regenerates the visible rows for the current query.
func (s *ListScreen) rebuildRows() {
	s.rows = nil
	query := strings.TrimSpace(s.query)

	appendStandards := func(stds []catalog.Standard, category string) {
		var matched []catalog.Standard
		for _, std := range stds {
			if query == "" || strings.Contains(std.Title, query) || strings.Contains(std.ID, query) {
				matched = append(matched, std)
			}
		}
		if len(matched) == 0 {
			return
		}
		if category != "" {
			s.rows = append(s.rows, row{kind: rowCategoryHeader, category: category})
		}
		for i := range matched {
			std := matched[i]
			s.rows = append(s.rows, row{kind: rowStandard, category: category, std: &std})
		}
	}

	for _, category := range s.cat.Categories() {
		appendStandards(s.cat.StandardsInCategory(category), category)
	}
	appendStandards(s.cat.StandardsInCategory(""), "")

	// Cursor to the first standard row.
	s.cursor = 0
	s.scrollOffset = 0
	for i, r := range s.rows {
		if r.kind == rowStandard {
			s.cursor = i
			break
		}
	}
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *ListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowStandard {
			s.cursor = next
			return
		}
		next += delta
	}
}

// selectStandard pushes the detail screen for the standard under the cursor.
func (s *ListScreen) selectStandard() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor]
	if r.kind != rowStandard || r.std == nil {
		return nil
	}
	detail := newDetail(*r.std, s.cat, s.data, s.ai)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func (s *ListScreen) View(width, height int) string {
	var b strings.Builder

	searchLine := "  / で検索"
	if s.searching || s.query != "" {
		searchLine = "  検索: " + s.search.View()
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(searchLine))
	b.WriteString("\n")

	listHeight := height - 2
	if listHeight < 1 {
		listHeight = 1
	}
	s.adjustScroll(listHeight)

	if len(s.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n該当する基準がありません"))
		return b.String()
	}

	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= listHeight {
			break
		}
		switch r.kind {
		case rowCategoryHeader:
			b.WriteString(s.renderCategoryHeader(r.category, width))
		case rowStandard:
			b.WriteString(s.renderStandardRow(r, i == s.cursor, width))
		}
		b.WriteString("\n")
		visible++
	}

	return b.String()
}

// adjustScroll keeps the cursor visible within the viewport.
func (s *ListScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ListScreen) renderCategoryHeader(category string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(category)
}

func (s *ListScreen) renderStandardRow(r row, selected bool, width int) string {
	std := r.std
	st := stats.ForStandard(std.ID, s.cat, s.data.Results())

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	badge := "    "
	if st.IsMastered {
		badge = lipgloss.NewStyle().Foreground(theme.Success).Render("習得")
	}
	bookmark := " "
	if s.data.IsBookmarked(std.ID) {
		bookmark = lipgloss.NewStyle().Foreground(theme.Accent).Render("★")
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	} else if st.IsMastered {
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	progress := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%3d%%", st.Progress))

	return fmt.Sprintf("  %s%s %s  %s  [%s]  %s  %s",
		cursor,
		bookmark,
		nameStyle.Render(std.ID),
		nameStyle.Render(std.Title),
		string(std.Importance),
		progress,
		badge,
	)
}
