package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/ui/theme"
)

// Marubatsu is a true/false (○/×) selector component.
type Marubatsu struct {
	Question      string
	CorrectAnswer bool
	SelectedTrue  bool
	Submitted     bool
	ChosenTrue    bool
}

// NewMarubatsu creates a new ○/× component. ○ starts selected.
func NewMarubatsu(question string, correctAnswer bool) Marubatsu {
	return Marubatsu{
		Question:      question,
		CorrectAnswer: correctAnswer,
		SelectedTrue:  true,
	}
}

// Init returns nil.
func (m Marubatsu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m Marubatsu) Update(msg tea.Msg) (Marubatsu, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "left", "h", "o":
		m.SelectedTrue = true
	case "right", "l", "x":
		m.SelectedTrue = false
	case "enter":
		m.Submitted = true
		m.ChosenTrue = m.SelectedTrue
	}

	return m, nil
}

// View renders the question with the ○ and × choices side by side.
func (m Marubatsu) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	s += "  " + m.renderChoice(true) + "      " + m.renderChoice(false) + "\n"
	return s
}

func (m Marubatsu) renderChoice(isTrue bool) string {
	label := "○ 正しい"
	if !isTrue {
		label = "× 誤り"
	}

	if m.Submitted {
		switch {
		case isTrue == m.CorrectAnswer:
			return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(label)
		case isTrue == m.ChosenTrue:
			return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(label)
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
	}

	if isTrue == m.SelectedTrue {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + label)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label)
}

// IsCorrect returns true if the user chose the correct answer.
func (m Marubatsu) IsCorrect() bool {
	return m.Submitted && m.ChosenTrue == m.CorrectAnswer
}
