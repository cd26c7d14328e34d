package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TelegramTokenStep collects the Telegram bot token
type TelegramTokenStep struct {
	input textinput.Model
}

func NewTelegramTokenStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "123456789:ABCDEF..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &TelegramTokenStep{
		input: ti,
	}
}

func (s *TelegramTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramTokenStep) Applies(state *InstallState) bool {
	return wantsTelegram(state)
}

func (s *TelegramTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.TelegramToken = strings.TrimSpace(s.input.Value())
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TelegramTokenStep) View(state *InstallState) string {
	return "Enter your Telegram Bot Token:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// TelegramChatsStep collects the chat ids allowed to talk to the bot
type TelegramChatsStep struct {
	input textinput.Model
	err   string
}

func NewTelegramChatsStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "123456789,-100987654321"
	ti.EchoMode = textinput.EchoNormal

	return &TelegramChatsStep{
		input: ti,
	}
}

func (s *TelegramChatsStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramChatsStep) Applies(state *InstallState) bool {
	return wantsTelegram(state)
}

func (s *TelegramChatsStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			chats, err := parseChatIDs(s.input.Value())
			if err != nil {
				s.err = err.Error()
				return s, nil
			}
			state.Settings.AllowedChats = chats
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TelegramChatsStep) View(state *InstallState) string {
	view := "Enter allowed Telegram chat IDs, comma separated (empty allows all):\n\n" +
		s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

// parseChatIDs validates a comma separated id list.
func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a chat id", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
