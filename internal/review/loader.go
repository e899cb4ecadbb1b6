package review

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhii242004/applymail/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type generateDoneMsg struct {
	email model.Email
	err   error
}

type spinnerTickMsg struct{}

type loaderModel struct {
	modelName string
	generate  func(ctx context.Context) (model.Email, error)
	frame     int
	result    model.Email
	err       error
	done      bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doGenerate(), m.tick())
}

func (m loaderModel) doGenerate() tea.Cmd {
	generate := m.generate
	return func() tea.Msg {
		email, err := generate(context.Background())
		return generateDoneMsg{email: email, err: err}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		m.result = msg.email
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Drafting application email with %s...\n", spinner, m.modelName)
}

// RunLoader shows a spinner while the drafting pipeline runs. It renders
// inline (no alt screen) so the final email can be printed right after.
func RunLoader(modelName string, generate func(ctx context.Context) (model.Email, error)) (model.Email, error) {
	m := loaderModel{
		modelName: modelName,
		generate:  generate,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return model.Email{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
