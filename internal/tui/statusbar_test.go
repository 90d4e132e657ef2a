package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestNewStatusBarModel(t *testing.T) {
	m := newStatusBarModel()
	if m.msg != "" {
		t.Errorf("msg = %q, want empty", m.msg)
	}
	if m.nextID != 0 {
		t.Errorf("nextID = %d, want 0", m.nextID)
	}
	if m.tasksRunning() {
		t.Error("new status bar should not have tasks running")
	}
}

func TestStatusBar_ShowMsg(t *testing.T) {
	tests := []struct {
		name string
		kind statusMsgKind
	}{
		{"success", statusSuccess},
		{"error", statusError},
		{"warning", statusWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newStatusBarModel()
			m, cmd := m.showMsg("Enabled pdf", tt.kind)
			if m.msg != "Enabled pdf" {
				t.Errorf("msg = %q, want %q", m.msg, "Enabled pdf")
			}
			if m.msgKind != tt.kind {
				t.Errorf("msgKind = %d, want %d", m.msgKind, tt.kind)
			}
			if cmd == nil {
				t.Error("showMsg should return a cmd for the auto-dismiss timer")
			}
		})
	}
}

func TestStatusBar_ShowErr(t *testing.T) {
	m := newStatusBarModel()
	m, _ = m.showErr(errors.New("disk full"))
	if m.msgKind != statusError {
		t.Errorf("msgKind = %d, want statusError", m.msgKind)
	}
	if m.msg != "Error: disk full" {
		t.Errorf("msg = %q", m.msg)
	}
}

func TestStatusBar_Update_DismissMatchingID(t *testing.T) {
	m := newStatusBarModel()
	m, _ = m.showMsg("hello", statusSuccess)

	m, _ = m.update(statusDismissMsg{id: m.msgID})
	if m.msg != "" {
		t.Errorf("msg = %q, want empty when dismiss ID matches", m.msg)
	}
}

func TestStatusBar_Update_DismissStaleID(t *testing.T) {
	m := newStatusBarModel()
	m, _ = m.showMsg("first", statusSuccess)
	staleID := m.msgID

	m, _ = m.showMsg("second", statusSuccess)
	if m.msgID == staleID {
		t.Fatal("second message should have a different ID")
	}

	m, _ = m.update(statusDismissMsg{id: staleID})
	if m.msg != "second" {
		t.Errorf("msg = %q, want %q (stale dismiss should be ignored)", m.msg, "second")
	}
}

func TestStatusBar_Tasks(t *testing.T) {
	m := newStatusBarModel()

	m, cmd := m.update(taskStartedMsg{label: "copying"})
	if !m.tasksRunning() {
		t.Fatal("tasksRunning() should be true after taskStartedMsg")
	}
	if cmd == nil {
		t.Error("first taskStartedMsg should return a spinner tick cmd")
	}

	m, cmd = m.update(taskStartedMsg{label: "reloading"})
	if cmd != nil {
		t.Error("second taskStartedMsg should not start another spinner")
	}
	if m.label != "reloading" {
		t.Errorf("label = %q, want latest task label", m.label)
	}

	m, _ = m.update(taskDoneMsg{})
	if !m.tasksRunning() {
		t.Error("one task is still running")
	}
	m, _ = m.update(taskDoneMsg{})
	if m.tasksRunning() {
		t.Error("tasksRunning() should be false after all tasks complete")
	}
	if m.label != "" {
		t.Errorf("label = %q, want empty", m.label)
	}

	// Extra done messages never drive the counter negative.
	m, _ = m.update(taskDoneMsg{})
	if m.tasks != 0 {
		t.Errorf("tasks = %d, want 0", m.tasks)
	}
}

func TestStatusBar_SpinnerTick_IgnoredWhenNoTasks(t *testing.T) {
	m := newStatusBarModel()
	_, cmd := m.update(spinner.TickMsg{Time: time.Now()})
	if cmd != nil {
		t.Error("spinner tick with no tasks should return nil cmd")
	}
}

func TestStatusBar_View(t *testing.T) {
	m := newStatusBarModel().setWidth(80)

	if v := m.view("help text here"); !strings.Contains(v, "help text here") {
		t.Errorf("view() = %q, should contain help text", v)
	}

	m, _ = m.showMsg("Enabled pdf", statusSuccess)
	v := m.view("help text here")
	if !strings.Contains(v, "Enabled pdf") {
		t.Errorf("view() = %q, should contain message", v)
	}
	if strings.Contains(v, "help text here") {
		t.Error("help text should be hidden while a message is active")
	}

	m = m.dismissMsg()
	m, _ = m.update(taskStartedMsg{label: "launching"})
	v = m.view("help text")
	if !strings.Contains(v, "launching") || !strings.Contains(v, "help text") {
		t.Errorf("view() = %q, should contain help and the task label", v)
	}
}
