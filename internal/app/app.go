package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/kaisetsu"
	"github.com/ymatsui/kijun/internal/router"
	"github.com/ymatsui/kijun/internal/screen"
	"github.com/ymatsui/kijun/internal/screens/home"
	sessionscreen "github.com/ymatsui/kijun/internal/screens/session"
	"github.com/ymatsui/kijun/internal/screens/welcome"
	"github.com/ymatsui/kijun/internal/session"
	"github.com/ymatsui/kijun/internal/syncer"
	"github.com/ymatsui/kijun/internal/ui/layout"
	"github.com/ymatsui/kijun/internal/ui/theme"
	"github.com/ymatsui/kijun/internal/userdata"
)

// statusInterval is how often the header re-reads the sync status.
const statusInterval = time.Second

type statusTickMsg time.Time

// Options carries the dependencies the TUI needs.
type Options struct {
	Catalog *catalog.Catalog
	Data    *userdata.Store
	Engine  *syncer.Engine
	Account string

	// AI may be nil; AI commentary then reports it is unconfigured.
	AI *kaisetsu.Service

	// StartSession, when set, skips the welcome splash and opens a quiz
	// session immediately.
	StartSession *session.Params
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	status syncer.Status
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome splash,
// or at the home screen when a session is requested up front.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Catalog, opts.Data, opts.AI)
	}
	initial := screen.Screen(welcome.New(homeFactory))
	if opts.StartSession != nil {
		initial = homeFactory()
	}
	m := AppModel{
		router: router.New(initial),
		opts:   opts,
		status: syncer.Status{Online: true},
	}
	if opts.Engine != nil {
		m.status = opts.Engine.Status()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.opts.StartSession != nil {
		cmd = m.router.Push(sessionscreen.New(*m.opts.StartSession, m.opts.Catalog, m.opts.Data))
	}
	return tea.Batch(cmd, statusTick())
}

func statusTick() tea.Cmd {
	return tea.Tick(statusInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusTickMsg:
		if m.opts.Engine != nil {
			m.status = m.opts.Engine.Status()
		}
		return m, statusTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.opts.Account, m.status.Online, m.width)

	notice := ""
	if m.status.Message != "" {
		notice = lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(m.status.Message)
	}

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	if notice != "" {
		headerHeight += lipgloss.Height(notice)
	}
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	top := header
	if notice != "" {
		top = header + "\n" + notice
	}
	frame := layout.RenderFrame(top, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen for its hints, falling back to the
// defaults for the current router depth.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints := p.KeyHints()
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "終了"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "戻る"},
			{Key: "Ctrl+C", Description: "終了"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "移動"},
		{Key: "Enter", Description: "決定"},
		{Key: "Ctrl+C", Description: "終了"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
