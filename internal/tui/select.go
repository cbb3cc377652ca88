package tui

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// SelectOption represents an option in a select list. Disabled options
// are shown but cannot be chosen, used for time slots with no capacity.
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Disabled    bool
}

// SelectModel is a bubbletea model for a select component
type SelectModel struct {
	title    string
	options  []SelectOption
	cursor   int
	selected int
	done     bool
	quitting bool
}

// NewSelect creates a new select model
func NewSelect(title string, options []SelectOption) SelectModel {
	return SelectModel{
		title:    title,
		options:  options,
		selected: -1,
	}
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.options[m.cursor].Disabled {
				return m, nil
			}
			m.selected = m.cursor
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SelectModel) View() string {
	if m.quitting {
		return ""
	}
	if m.done && m.selected >= 0 && m.selected < len(m.options) {
		return PromptStyle.Render(m.title) + " " +
			SuccessStyle.Render(m.options[m.selected].Label)
	}

	var b strings.Builder

	b.WriteString(PromptStyle.Render(m.title))
	b.WriteString("\n")

	for i, opt := range m.options {
		cursor := "  "
		style := UnselectedStyle
		if opt.Disabled {
			style = DisabledStyle
		}
		if i == m.cursor {
			cursor = CursorStyle.Render(IconPointer + " ")
			if !opt.Disabled {
				style = SelectedStyle
			}
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(opt.Label))

		if opt.Description != "" {
			b.WriteString(" ")
			b.WriteString(MutedStyle.Render("- " + opt.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("↑/↓ navigate • enter select • q quit"))

	return b.String()
}

// RunSelect runs a select prompt and returns the selected value
func RunSelect(title string, options []SelectOption) (string, error) {
	if !IsTTY() {
		return runSelectSurvey(title, options)
	}

	m := NewSelect(title, options)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("select error: %w", err)
	}

	result, ok := finalModel.(SelectModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if result.quitting {
		return "", fmt.Errorf("selection cancelled")
	}
	if result.selected < 0 || result.selected >= len(options) {
		return "", fmt.Errorf("no selection made")
	}

	fmt.Println() // Print newline after select
	return options[result.selected].Value, nil
}

// runSelectSurvey is a fallback using survey library
func runSelectSurvey(title string, options []SelectOption) (string, error) {
	labels := make([]string, 0, len(options))
	labelToValue := make(map[string]string)

	for _, opt := range options {
		if opt.Disabled {
			continue
		}
		label := opt.Label
		if opt.Description != "" {
			label = fmt.Sprintf("%s - %s", opt.Label, opt.Description)
		}
		labels = append(labels, label)
		labelToValue[label] = opt.Value
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("no selectable options")
	}

	var selected string
	prompt := &survey.Select{
		Message: title,
		Options: labels,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return labelToValue[selected], nil
}
