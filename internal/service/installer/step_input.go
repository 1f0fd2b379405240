package installer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/bioprep/internal/service/ui"
)

// InputStep asks for a single value and stores it through apply.
type InputStep struct {
	input    textinput.Model
	title    string
	optional bool
	apply    func(state *InstallState, value string)
	err      error
}

func newInputStep(title, placeholder string, secret, optional bool, apply func(*InstallState, string)) *InputStep {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 255
	in.Width = 50
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	in.Focus()

	return &InputStep{
		input:    in,
		title:    title,
		optional: optional,
		apply:    apply,
	}
}

func NewAPIKeyStep() Step {
	return newInputStep("Metis API key", "tpsg-...", true, false, func(s *InstallState, v string) {
		s.Metis.APIKey = v
	})
}

func NewBaseURLStep() Step {
	return newInputStep("Metis API base URL", "https://api.metisai.ir/api/v1", false, true, func(s *InstallState, v string) {
		s.Metis.BaseURL = v
	})
}

func NewBioBotStep() Step {
	return newInputStep("biography bot id", "bot id from the Metis dashboard", false, true, func(s *InstallState, v string) {
		s.Metis.BioBotID = v
	})
}

func NewFaceBotStep() Step {
	return newInputStep("face description bot id", "bot id from the Metis dashboard", false, true, func(s *InstallState, v string) {
		s.Metis.FaceBotID = v
	})
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(s.input.Value())
		if value == "" && !s.optional {
			s.err = errors.New("a value is required")
			return s, nil
		}
		s.apply(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := ""
	if s.optional {
		hint = " (optional, press Enter to skip)"
	}

	view := fmt.Sprintf("Enter the %s%s:\n\n%s\n\n", s.title, hint, s.input.View())
	if s.err != nil {
		view += ui.ErrorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}
