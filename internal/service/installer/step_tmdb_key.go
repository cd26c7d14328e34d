package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TMDBKeyStep collects the TMDB v3 API key
type TMDBKeyStep struct {
	input textinput.Model
	err   string
}

func NewTMDBKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = "32 hex characters"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &TMDBKeyStep{input: ti}
}

func (s *TMDBKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TMDBKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			s.err = "The API key is required."
			return s, nil
		}
		state.Settings.TMDBAPIKey = val
		return nil, nil
	}
	return s, cmd
}

func (s *TMDBKeyStep) View(state *InstallState) string {
	view := "Enter your TMDB API Key (themoviedb.org/settings/api):\n\n" + s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}
