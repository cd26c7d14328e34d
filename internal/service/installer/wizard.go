package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// conditional steps only run for some channels.
type conditional interface {
	Applies(state *InstallState) bool
}

func getSteps() []Step {
	return []Step{
		NewTMDBKeyStep(),
		NewChannelStep(),
		NewListenAddrStep(),
		NewTelegramTokenStep(),
		NewTelegramChatsStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
	}
}

// nextMsg nudges steps that complete without user input.
type nextMsg struct{}

type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func initialModel() model {
	return model{
		steps: getSteps(),
		state: NewInstallState(),
	}
}

func applies(step Step, state *InstallState) bool {
	c, ok := step.(conditional)
	return !ok || c.Applies(state)
}

// advance moves past the current step and any following steps that do not
// apply to the chosen channel.
func (m *model) advance() {
	m.currentStep++
	for m.currentStep < len(m.steps) && !applies(m.steps[m.currentStep], m.state) {
		m.currentStep++
	}
}

// progress counts only the interactive steps that apply.
func (m *model) progress() string {
	pos, total := 0, 0
	for i, step := range m.steps {
		if _, auto := step.(*FinalizationStep); auto {
			continue
		}
		if _, auto := step.(*SaveEnvStep); auto {
			continue
		}
		if !applies(step, m.state) {
			continue
		}
		total++
		if i <= m.currentStep {
			pos = total
		}
	}
	return fmt.Sprintf("Step %d of %d", pos, total)
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if nextStep == nil {
		m.advance()
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	m.steps[m.currentStep] = nextStep
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Installing CineBot 🎬") + "  " + hintStyle.Render(m.progress())
	return header + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("cinebot installation interrupted")
	}

	return finalModel.state, nil
}
