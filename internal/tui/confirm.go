package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a centered modal that asks before an action runs. When
// active it intercepts all key input.
//
// left/right/tab/shift+tab move focus between the buttons, enter activates
// the focused one, y/n/esc are accelerators.
//
//	app.confirm = app.confirm.show("Delete category Docs?", "", deleteCmd)
type confirmModel struct {
	active    bool
	message   string
	detail    string  // optional muted line under the message
	yesLabel  string  // defaults to "Yes"
	onConfirm tea.Cmd // runs on confirmation
	focusYes  bool

	width  int
	height int
}

// confirmResultMsg is sent after the user responds to a confirmation dialog.
type confirmResultMsg struct {
	confirmed bool
}

func newConfirmModel() confirmModel {
	return confirmModel{}
}

// show activates the dialog. Focus starts on No.
func (m confirmModel) show(message, detail string, onConfirm tea.Cmd) confirmModel {
	m.active = true
	m.message = message
	m.detail = detail
	m.yesLabel = "Yes"
	m.onConfirm = onConfirm
	m.focusYes = false
	return m
}

// withYesLabel renames the confirm button, e.g. "Launch".
func (m confirmModel) withYesLabel(label string) confirmModel {
	m.yesLabel = label
	return m
}

func (m confirmModel) setSize(width, height int) confirmModel {
	m.width = width
	m.height = height
	return m
}

func (m confirmModel) dismiss() confirmModel {
	m.active = false
	m.message = ""
	m.detail = ""
	m.onConfirm = nil
	m.focusYes = false
	return m
}

func (m confirmModel) confirm() (confirmModel, tea.Cmd) {
	cmd := m.onConfirm
	m = m.dismiss()
	return m, tea.Batch(cmd, func() tea.Msg {
		return confirmResultMsg{confirmed: true}
	})
}

func (m confirmModel) cancel() (confirmModel, tea.Cmd) {
	m = m.dismiss()
	return m, func() tea.Msg {
		return confirmResultMsg{confirmed: false}
	}
}

// update handles key input while the dialog is active and reports whether
// the message was consumed.
func (m confirmModel) update(msg tea.Msg) (confirmModel, tea.Cmd, bool) {
	if !m.active {
		return m, nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch {
	case key.Matches(keyMsg, confirmYesKey):
		m, cmd := m.confirm()
		return m, cmd, true

	case key.Matches(keyMsg, confirmNoKey), key.Matches(keyMsg, keys.Back):
		m, cmd := m.cancel()
		return m, cmd, true

	case key.Matches(keyMsg, confirmEnter):
		if m.focusYes {
			m, cmd := m.confirm()
			return m, cmd, true
		}
		m, cmd := m.cancel()
		return m, cmd, true

	case key.Matches(keyMsg, confirmLeft), key.Matches(keyMsg, confirmRight),
		key.Matches(keyMsg, confirmTab), key.Matches(keyMsg, confirmShiftTab):
		m.focusYes = !m.focusYes
		return m, nil, true
	}

	// Swallow everything else so nothing leaks to the views underneath.
	return m, nil, true
}

func (m confirmModel) view() string {
	if !m.active {
		return ""
	}

	blocks := []string{
		lipgloss.NewStyle().Width(44).Align(lipgloss.Center).Render(m.message),
	}
	if m.detail != "" {
		blocks = append(blocks, mutedStyle.Width(44).Align(lipgloss.Center).Render(m.detail))
	}

	label := m.yesLabel
	if label == "" {
		label = "Yes"
	}
	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render(label)
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render(label)
		noBtn = dialogActiveButtonStyle.Render("No")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	blocks = append(blocks, "", buttons)

	dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, blocks...))
	if m.width <= 0 || m.height <= 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

// Key bindings for the confirm dialog (not part of the global keyMap).
var (
	confirmYesKey = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	)
	confirmNoKey = key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "cancel"),
	)
	confirmEnter    = key.NewBinding(key.WithKeys("enter"))
	confirmLeft     = key.NewBinding(key.WithKeys("left", "h"))
	confirmRight    = key.NewBinding(key.WithKeys("right", "l"))
	confirmTab      = key.NewBinding(key.WithKeys("tab"))
	confirmShiftTab = key.NewBinding(key.WithKeys("shift+tab"))
)
