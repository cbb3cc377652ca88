package tui

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a bubbletea model for a yes/no question
type ConfirmModel struct {
	prompt   string
	value    bool
	done     bool
	quitting bool
}

// NewConfirm creates a new confirm model
func NewConfirm(prompt string, defaultValue bool) ConfirmModel {
	return ConfirmModel{
		prompt: prompt,
		value:  defaultValue,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "left", "right", "tab", "h", "l":
			m.value = !m.value
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}
	if m.done {
		answer := "no"
		if m.value {
			answer = "yes"
		}
		return PromptStyle.Render(m.prompt) + " " + SuccessStyle.Render(answer)
	}

	var b strings.Builder

	b.WriteString(PromptStyle.Render(m.prompt))
	b.WriteString(" ")

	if m.value {
		b.WriteString(SelectedStyle.Render("▸ yes"))
		b.WriteString("  ")
		b.WriteString(UnselectedStyle.Render("no"))
	} else {
		b.WriteString(UnselectedStyle.Render("yes"))
		b.WriteString("  ")
		b.WriteString(SelectedStyle.Render("▸ no"))
	}

	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("←/→ toggle • y/n • enter confirm • esc cancel"))

	return b.String()
}

// RunConfirm asks a yes/no question and returns the answer
func RunConfirm(prompt string, defaultValue bool) (bool, error) {
	if !IsTTY() {
		return runConfirmSurvey(prompt, defaultValue)
	}

	p := tea.NewProgram(NewConfirm(prompt, defaultValue))

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm error: %w", err)
	}

	result, ok := finalModel.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	if result.quitting {
		return false, fmt.Errorf("confirm cancelled")
	}

	fmt.Println()
	return result.value, nil
}

// runConfirmSurvey is a fallback using survey library
func runConfirmSurvey(prompt string, defaultValue bool) (bool, error) {
	var value bool
	surveyPrompt := &survey.Confirm{
		Message: prompt,
		Default: defaultValue,
	}

	if err := survey.AskOne(surveyPrompt, &value); err != nil {
		return false, err
	}
	return value, nil
}
