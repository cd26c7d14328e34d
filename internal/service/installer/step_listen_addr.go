package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultListenAddr = ":8080"

// ListenAddrStep collects the webhook listen address.
type ListenAddrStep struct {
	input textinput.Model
}

func NewListenAddrStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = defaultListenAddr
	ti.Width = 30
	return &ListenAddrStep{input: ti}
}

func (s *ListenAddrStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ListenAddrStep) Applies(state *InstallState) bool {
	return wantsWebhook(state)
}

func (s *ListenAddrStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = defaultListenAddr
		}
		state.Settings.ListenAddr = val
		return nil, nil
	}
	return s, cmd
}

func (s *ListenAddrStep) View(state *InstallState) string {
	return "Enter the webhook listen address:\n\n" + s.input.View() + "\n\n(press enter for " + defaultListenAddr + ")\n"
}
