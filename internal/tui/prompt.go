package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// promptPurpose identifies what a submitted value is for.
type promptPurpose int

const (
	promptNewCategory promptPurpose = iota
	promptRenameCategory
	promptInstallInto
	promptProject
)

// promptSubmitMsg carries the trimmed value of a submitted prompt.
type promptSubmitMsg struct {
	purpose promptPurpose
	value   string
	subject string // e.g. the category being renamed
}

// promptModel is a single-line text input shown as a modal.
type promptModel struct {
	active  bool
	purpose promptPurpose
	title   string
	subject string
	errText string
	input   textinput.Model

	width  int
	height int
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 40
	return promptModel{input: ti}
}

// show opens the prompt with an initial value.
func (m promptModel) show(purpose promptPurpose, title, subject, value, placeholder string) (promptModel, tea.Cmd) {
	m.active = true
	m.purpose = purpose
	m.title = title
	m.subject = subject
	m.errText = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m promptModel) dismiss() promptModel {
	m.active = false
	m.errText = ""
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m promptModel) setSize(width, height int) promptModel {
	m.width = width
	m.height = height
	m.input.Width = min(48, max(10, width-12))
	return m
}

// update consumes every key while active. Enter with an empty value keeps
// the prompt open.
func (m promptModel) update(msg tea.Msg) (promptModel, tea.Cmd, bool) {
	if !m.active {
		return m, nil, false
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, promptSubmitKey):
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.errText = "A value is required"
				return m, nil, true
			}
			sub := promptSubmitMsg{purpose: m.purpose, value: value, subject: m.subject}
			m = m.dismiss()
			return m, func() tea.Msg { return sub }, true
		case key.Matches(kmsg, promptCancelKey):
			m = m.dismiss()
			return m, nil, true
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_, isKey := msg.(tea.KeyMsg)
	if isKey {
		m.errText = ""
	}
	return m, cmd, isKey
}

func (m promptModel) view() string {
	if !m.active {
		return ""
	}

	blocks := []string{
		lipgloss.NewStyle().Bold(true).Render(m.title),
		"",
		m.input.View(),
	}
	if m.errText != "" {
		blocks = append(blocks, "", errorStyle.Render(m.errText))
	}
	dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	if m.width <= 0 || m.height <= 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

var (
	promptSubmitKey = key.NewBinding(key.WithKeys("enter"))
	promptCancelKey = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
)
