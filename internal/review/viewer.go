package review

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhii242004/applymail/internal/model"
)

var (
	viewerHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(0, 1)

	viewerMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	viewerBodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	viewerStatusStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236"))
)

// Rows consumed by the header, meta line, borders, and status bar.
const viewerChromeHeight = 6

type viewerModel struct {
	email    model.Email
	viewport viewport.Model
	ready    bool
	back     bool // return to the picker
	quit     bool // leave the TUI entirely
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - viewerChromeHeight
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, height)
			m.viewport.SetContent(m.email.Body)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = height
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "b", "esc":
			m.back = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := viewerHeaderStyle.Render(fmt.Sprintf("Draft #%d — %s", m.email.ID, m.email.JobExcerpt))
	meta := viewerMetaStyle.Render(fmt.Sprintf("%s · %s",
		m.email.Model,
		m.email.CreatedAt.Local().Format("2006-01-02 15:04"),
	))
	status := viewerStatusStyle.Render(fmt.Sprintf("%3.0f%% · ↑/↓ scroll · b back · q quit", m.viewport.ScrollPercent()*100))

	return header + "\n" + meta + "\n" + viewerBodyStyle.Render(m.viewport.View()) + "\n" + status
}

// RunViewer shows a single draft in a scrollable viewport. It returns true
// when the user wants to leave the TUI entirely (rather than go back to the
// picker).
func RunViewer(email model.Email) (bool, error) {
	m := viewerModel{email: email}
	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return true, err
	}
	final := result.(viewerModel)
	return final.quit, nil
}
