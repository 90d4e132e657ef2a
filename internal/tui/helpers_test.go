package tui

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/barysiuk/skillmgr/internal/core"
)

// newTestRoot creates <tmp>/project/.claude with the given skills. Names in
// disabled land under disabled-skills.
func newTestRoot(t *testing.T, enabled, disabled []string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "project", ".claude")
	for _, name := range enabled {
		writeTestSkill(t, root, core.StateEnabled, name)
	}
	for _, name := range disabled {
		writeTestSkill(t, root, core.StateDisabled, name)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func writeTestSkill(t *testing.T, root string, state core.SkillState, name string) string {
	t.Helper()
	dir := filepath.Join(root, state.DirName(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: The " + name + " skill\nversion: 1.0.0\n---\n# " + name + "\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// testPackage is a package file installed directly in an agent root.
type testPackage struct {
	path string
}

func (p testPackage) OwnPackage() (string, error) { return p.path, nil }

func (p testPackage) PackageParent(levels int) (string, error) {
	dir := p.path
	for range levels {
		dir = filepath.Dir(dir)
	}
	return dir, nil
}

// newTestManager returns a manager pinned to root, running from a fake
// package inside it, that never starts a process.
func newTestManager(t *testing.T, root string) *core.Manager {
	t.Helper()
	pkg := filepath.Join(root, "skillmgr")
	writeFile(t, pkg, "#!/bin/sh\n")
	m, err := core.NewManager(core.ManagerOptions{
		RootOverride: root,
		Locator:      core.NewLocator(testPackage{path: pkg}),
		Settings:     core.NewSettingsManagerWithDir(t.TempDir()),
		Launcher: core.LauncherFunc(func(string) (int, error) {
			return 1, nil
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func mustSnapshot(t *testing.T, m *core.Manager) *core.Snapshot {
	t.Helper()
	snap, err := m.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// collect runs cmd and returns the messages it produces, expanding batches
// and sequences in order. Only use it on commands that do not block.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	rv := reflect.ValueOf(msg)
	if rv.Kind() == reflect.Slice && rv.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := 0; i < rv.Len(); i++ {
			sub, _ := rv.Index(i).Interface().(tea.Cmd)
			out = append(out, collect(sub)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T.
func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
