package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusMsgKind defines the visual style of a transient status message.
type statusMsgKind int

const (
	statusSuccess statusMsgKind = iota
	statusError
	statusWarning
)

// statusAutoDismiss is how long transient messages stay visible.
const statusAutoDismiss = 3 * time.Second

// statusBarModel manages the bottom line of the TUI.
//
// Layout: [left: transient message or help] [right: running task]
//
// A transient message replaces the help keybindings until it auto-dismisses.
// The right zone shows a spinner and the label of the operation in flight.
type statusBarModel struct {
	width int

	msg     string
	msgKind statusMsgKind
	msgID   int // Monotonic; used to ignore stale dismiss timers.
	nextID  int

	// Operations run one at a time, but a reload can overlap a user action.
	tasks   int
	label   string
	spinner spinner.Model
}

// statusDismissMsg is sent by the auto-dismiss timer.
type statusDismissMsg struct {
	id int
}

// taskStartedMsg marks the start of a background operation.
type taskStartedMsg struct {
	label string
}

// taskDoneMsg marks the end of a background operation.
type taskDoneMsg struct{}

func newStatusBarModel() statusBarModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)
	return statusBarModel{
		spinner: s,
	}
}

func (m statusBarModel) setWidth(width int) statusBarModel {
	m.width = width
	return m
}

// showMsg displays a transient message in the left zone and returns a
// command that dismisses it after statusAutoDismiss.
func (m statusBarModel) showMsg(text string, kind statusMsgKind) (statusBarModel, tea.Cmd) {
	m.msg = text
	m.msgKind = kind
	m.msgID = m.nextID
	m.nextID++

	id := m.msgID
	cmd := tea.Tick(statusAutoDismiss, func(_ time.Time) tea.Msg {
		return statusDismissMsg{id: id}
	})
	return m, cmd
}

// showErr is showMsg for an error value.
func (m statusBarModel) showErr(err error) (statusBarModel, tea.Cmd) {
	return m.showMsg(fmt.Sprintf("Error: %v", err), statusError)
}

func (m statusBarModel) dismissMsg() statusBarModel {
	m.msg = ""
	return m
}

func (m statusBarModel) tasksRunning() bool {
	return m.tasks > 0
}

func (m statusBarModel) update(msg tea.Msg) (statusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statusDismissMsg:
		if msg.id == m.msgID {
			m = m.dismissMsg()
		}
		return m, nil

	case taskStartedMsg:
		m.tasks++
		m.label = msg.label
		if m.tasks == 1 {
			return m, m.spinner.Tick
		}
		return m, nil

	case taskDoneMsg:
		if m.tasks > 0 {
			m.tasks--
		}
		if m.tasks == 0 {
			m.label = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.tasksRunning() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// view renders the status bar. An active message hides helpContent.
func (m statusBarModel) view(helpContent string) string {
	left := m.renderLeft()
	if left == "" {
		left = helpContent
	}

	right := m.renderRight()
	if right == "" {
		return left
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + fmt.Sprintf("%*s%s", gap, "", right)
}

func (m statusBarModel) renderLeft() string {
	if m.msg == "" {
		return ""
	}

	switch m.msgKind {
	case statusSuccess:
		return " " + statusSuccessStyle.Render("✓ "+m.msg)
	case statusError:
		return " " + statusErrorStyle.Render("✗ "+m.msg)
	case statusWarning:
		return " " + statusWarningStyle.Render("⚠ "+m.msg)
	}

	return ""
}

func (m statusBarModel) renderRight() string {
	if !m.tasksRunning() {
		return ""
	}
	return statusTaskStyle.Render(m.spinner.View() + m.label)
}
