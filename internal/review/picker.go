package review

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhii242004/applymail/internal/model"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerModel struct {
	drafts []model.Email
	cursor int
	chosen int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.chosen = -2
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.drafts)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render("Saved drafts")
	s += "\n"

	for i, d := range m.drafts {
		label := fmt.Sprintf("#%-4d %s  %s", d.ID, d.CreatedAt.Local().Format("2006-01-02 15:04"), d.JobExcerpt)
		if i == m.cursor {
			s += pickerSelectedStyle.Render("▸ "+label) + "\n"
		} else {
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓ move · enter open · q quit")
	return s + "\n"
}

// RunDraftPicker shows the saved-drafts list and returns the index of the
// chosen draft, or a negative value when the user quits.
func RunDraftPicker(drafts []model.Email) (int, error) {
	m := pickerModel{drafts: drafts, chosen: -1}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return -2, err
	}
	final := result.(pickerModel)
	return final.chosen, nil
}
