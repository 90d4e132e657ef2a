package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/barysiuk/skillmgr/internal/core"
)

// loadedApp returns an app that has been sized and has read root.
func loadedApp(t *testing.T, root string) (App, *core.Manager) {
	t.Helper()
	mgr := newTestManager(t, root)
	a := update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40})
	return reload(t, a), mgr
}

// update feeds msg to a and drops the returned command.
func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, _ := a.Update(msg)
	out, ok := model.(App)
	if !ok {
		t.Fatalf("Update returned %T", model)
	}
	return out
}

func reload(t *testing.T, a App) App {
	t.Helper()
	msg := a.loadSnapshotCmd()
	if snap, ok := msg.(snapshotMsg); ok && snap.err != nil {
		t.Fatalf("snapshot: %v", snap.err)
	}
	return update(t, a, msg)
}

func press(a App, key tea.KeyMsg) (App, tea.Cmd) {
	return step(a, key)
}

// step feeds msg to a and returns the command it answers with.
func step(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

// run collects the messages of cmd and feeds each back into a.
func run(t *testing.T, a App, cmd tea.Cmd) (App, []tea.Msg) {
	t.Helper()
	msgs := collect(cmd)
	for _, msg := range msgs {
		a = update(t, a, msg)
	}
	return a, msgs
}

func selectSkill(t *testing.T, a *App, name string) {
	t.Helper()
	for i, it := range a.skills.list.Items() {
		if it.(skillItem).skill.Name == name {
			a.skills.list.Select(i)
			return
		}
	}
	t.Fatalf("skill %q not in the active tab", name)
}

func addCategory(t *testing.T, mgr *core.Manager, name string) {
	t.Helper()
	if _, err := mgr.EditCategories(func(cfg *core.CategoryConfig) error {
		return cfg.AddCategory(name)
	}); err != nil {
		t.Fatal(err)
	}
}

func TestAppLoadsSnapshot(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, []string{"beta"}))
	if a.snap == nil || len(a.snap.Skills) != 2 {
		t.Fatalf("snapshot not applied: %+v", a.snap)
	}

	view := a.View()
	for _, want := range []string{"skillmgr", "Claude Code", "alpha", "beta", "Uncategorized 1/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppToggleSkill(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, []string{"beta"})
	a, mgr := loadedApp(t, root)
	selectSkill(t, &a, "beta")

	a, cmd := press(a, runes("x"))
	a, msgs := run(t, a, cmd)

	done, ok := findMsg[opDoneMsg](msgs)
	if !ok || done.err != nil {
		t.Fatalf("opDone = %+v", done)
	}
	if a.status.msg != "Enabled beta" {
		t.Errorf("status = %q", a.status.msg)
	}
	if a.status.tasks != 0 {
		t.Errorf("tasks = %d after completion", a.status.tasks)
	}

	skill, err := mgr.FindSkill("beta")
	if err != nil {
		t.Fatal(err)
	}
	if !skill.Enabled() {
		t.Error("beta should be enabled on disk")
	}
	if _, err := os.Stat(filepath.Join(root, "skills", "beta", "SKILL.md")); err != nil {
		t.Errorf("beta not moved: %v", err)
	}

	a = reload(t, a)
	if total, enabled := a.snap.Counts("Uncategorized"); total != 2 || enabled != 2 {
		t.Errorf("counts = %d/%d", enabled, total)
	}
}

func TestAppToggleCategory(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, []string{"beta"})
	a, mgr := loadedApp(t, root)

	// Partially enabled, so "a" enables all.
	a, cmd := press(a, runes("a"))
	_, msgs := run(t, a, cmd)
	if done, _ := findMsg[opDoneMsg](msgs); done.err != nil || done.text != "Enabled all in Uncategorized" {
		t.Fatalf("opDone = %+v", done)
	}
	snap := mustSnapshot(t, mgr)
	if _, enabled := snap.Counts("Uncategorized"); enabled != 2 {
		t.Errorf("enabled = %d, want 2", enabled)
	}
}

func TestAppNewCategory(t *testing.T) {
	a, mgr := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	a, _ = press(a, runes("n"))
	if !a.prompt.active || a.prompt.purpose != promptNewCategory {
		t.Fatal("n should open the new category prompt")
	}
	for _, r := range "Docs" {
		a, _ = press(a, runes(string(r)))
	}
	a, cmd := press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.prompt.active {
		t.Error("prompt should close on submit")
	}
	submit, ok := findMsg[promptSubmitMsg](collect(cmd))
	if !ok || submit.value != "Docs" {
		t.Fatalf("submit = %+v", submit)
	}

	a, cmd = step(a, submit)
	a, msgs := run(t, a, cmd)
	if done, _ := findMsg[opDoneMsg](msgs); done.err != nil || done.text != "Added Docs" {
		t.Fatalf("opDone = %+v", done)
	}
	if !mustSnapshot(t, mgr).Categories.Has("Docs") {
		t.Error("Docs not saved")
	}

	a = reload(t, a)
	if a.skills.tabs.activeName() != "Docs" {
		t.Errorf("active tab = %q, want the new category", a.skills.tabs.activeName())
	}
}

func TestAppNewCategoryDuplicate(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	a, cmd := step(a, promptSubmitMsg{purpose: promptNewCategory, value: "Uncategorized"})
	a, msgs := run(t, a, cmd)
	done, _ := findMsg[opDoneMsg](msgs)
	if done.err == nil {
		t.Fatal("adding an existing category should fail")
	}
	if !strings.HasPrefix(a.status.msg, "Error:") {
		t.Errorf("status = %q", a.status.msg)
	}
}

func TestAppRenameCategory(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	mgr := newTestManager(t, root)
	addCategory(t, mgr, "Docs")
	a := reload(t, update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40}))

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyTab})
	a, _ = press(a, runes("R"))
	if !a.prompt.active || a.prompt.subject != "Docs" || a.prompt.input.Value() != "Docs" {
		t.Fatalf("rename prompt: active=%v subject=%q value=%q", a.prompt.active, a.prompt.subject, a.prompt.input.Value())
	}
	a.prompt.input.SetValue("Guides")
	a, cmd := press(a, tea.KeyMsg{Type: tea.KeyEnter})
	submit, _ := findMsg[promptSubmitMsg](collect(cmd))
	a, cmd = step(a, submit)
	a, _ = run(t, a, cmd)

	snap := mustSnapshot(t, mgr)
	if snap.Categories.Has("Docs") || !snap.Categories.Has("Guides") {
		t.Errorf("categories = %v", snap.Categories.Keys())
	}
	a = reload(t, a)
	if a.skills.tabs.activeName() != "Guides" {
		t.Errorf("active tab = %q", a.skills.tabs.activeName())
	}
}

func TestAppDeleteLastCategory(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	a, _ = press(a, runes("D"))
	if a.confirm.active {
		t.Error("deleting the only category should not ask")
	}
	if !strings.Contains(a.status.msg, "last category") {
		t.Errorf("status = %q", a.status.msg)
	}
}

func TestAppDeleteCategory(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	mgr := newTestManager(t, root)
	addCategory(t, mgr, "Docs")
	if _, err := mgr.EditCategories(func(cfg *core.CategoryConfig) error {
		return cfg.MoveSkill("alpha", "Docs")
	}); err != nil {
		t.Fatal(err)
	}
	a := reload(t, update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40}))

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyTab})
	a, _ = press(a, runes("D"))
	if !a.confirm.active || !strings.Contains(a.confirm.detail, "Uncategorized") {
		t.Fatalf("confirm: active=%v detail=%q", a.confirm.active, a.confirm.detail)
	}
	if a.status.tasks != 0 {
		t.Error("no task should run before confirmation")
	}

	a, cmd := press(a, runes("y"))
	_, msgs := run(t, a, cmd)
	if done, _ := findMsg[opDoneMsg](msgs); done.err != nil || done.text != "Deleted Docs" {
		t.Fatalf("opDone = %+v", done)
	}
	snap := mustSnapshot(t, mgr)
	if snap.Categories.Has("Docs") {
		t.Error("Docs still present")
	}
	if cat, _ := snap.Categories.CategoryOf("alpha"); cat != "Uncategorized" {
		t.Errorf("alpha moved to %q", cat)
	}
}

func TestAppDeleteCategoryCancelled(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	mgr := newTestManager(t, root)
	addCategory(t, mgr, "Docs")
	a := reload(t, update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40}))

	a, _ = press(a, runes("D"))
	a, cmd := press(a, runes("n"))
	if a.confirm.active {
		t.Error("n should dismiss the dialog")
	}
	if _, ok := findMsg[opDoneMsg](collect(cmd)); ok {
		t.Error("cancel should not run the operation")
	}
	if !mustSnapshot(t, mgr).Categories.Has("Uncategorized") {
		t.Error("category deleted despite cancel")
	}
}

func TestAppMoveSkill(t *testing.T) {
	root := newTestRoot(t, []string{"alpha", "beta"}, nil)
	mgr := newTestManager(t, root)
	addCategory(t, mgr, "Docs")
	a := reload(t, update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40}))
	selectSkill(t, &a, "beta")

	a, _ = press(a, runes("m"))
	if !a.picker.active || a.picker.skill != "beta" {
		t.Fatal("m should open the category picker")
	}
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyDown})
	a, cmd := press(a, tea.KeyMsg{Type: tea.KeyEnter})
	picked, ok := findMsg[categoryPickedMsg](collect(cmd))
	if !ok || picked.category != "Docs" {
		t.Fatalf("picked = %+v", picked)
	}
	a, cmd = step(a, picked)
	a, msgs := run(t, a, cmd)

	if done, _ := findMsg[opDoneMsg](msgs); done.err != nil || done.text != "Moved beta to Docs" {
		t.Fatalf("opDone = %+v", done)
	}
	if cat, _ := mustSnapshot(t, mgr).Categories.CategoryOf("beta"); cat != "Docs" {
		t.Errorf("beta is in %q", cat)
	}
	a = reload(t, a)
	if total, _ := a.snap.Counts("Uncategorized"); total != 1 {
		t.Errorf("Uncategorized total = %d", total)
	}
}

func TestAppReorderCategories(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	mgr := newTestManager(t, root)
	addCategory(t, mgr, "Docs")
	a := reload(t, update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40}))

	// The first tab cannot move left.
	a, cmd := press(a, runes("["))
	if cmd != nil {
		t.Fatal("moving the first tab left should do nothing")
	}
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyTab})
	a, cmd = press(a, runes("["))
	a, _ = run(t, a, cmd)

	got := strings.Join(mustSnapshot(t, mgr).Categories.CategoryOrder, ",")
	if got != "Docs,Uncategorized" {
		t.Errorf("order = %s", got)
	}
	a = reload(t, a)
	if a.skills.tabs.activeName() != "Docs" || a.skills.tabs.activeTab != 0 {
		t.Errorf("active tab = %q at %d", a.skills.tabs.activeName(), a.skills.tabs.activeTab)
	}
}

func TestAppCopyConflict(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	writeTestSkill(t, filepath.Join(filepath.Dir(root), ".codex"), core.StateDisabled, "alpha")
	a, _ := loadedApp(t, root)
	if !a.skills.canCopy {
		t.Fatal("copy should be offered when .codex exists")
	}

	a, cmd := press(a, runes("c"))
	a, _ = run(t, a, cmd)
	if a.confirm.active {
		t.Error("a conflict should not offer to copy")
	}
	if !strings.Contains(a.status.msg, "alpha already exists in Codex (disabled") {
		t.Errorf("status = %q", a.status.msg)
	}
}

func TestAppCopySkill(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	codex := filepath.Join(filepath.Dir(root), ".codex")
	if err := os.MkdirAll(codex, 0o755); err != nil {
		t.Fatal(err)
	}
	a, _ := loadedApp(t, root)

	a, cmd := press(a, runes("c"))
	a, _ = run(t, a, cmd)
	if !a.confirm.active || a.confirm.yesLabel != "Copy" {
		t.Fatalf("copy confirm: active=%v", a.confirm.active)
	}

	a, cmd = press(a, runes("y"))
	_, msgs := run(t, a, cmd)
	if done, _ := findMsg[opDoneMsg](msgs); done.err != nil || done.text != "Copied alpha to Codex" {
		t.Fatalf("opDone = %+v", done)
	}
	if _, err := os.Stat(filepath.Join(codex, "skills", "alpha", "SKILL.md")); err != nil {
		t.Errorf("copy missing: %v", err)
	}
}

func TestAppCopyWithoutOtherAgent(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	a, cmd := press(a, runes("c"))
	if _, ok := findMsg[copyInspectedMsg](collect(cmd)); ok {
		t.Error("copy should not be inspected without a .codex directory")
	}
	if !strings.Contains(a.status.msg, "No .codex directory") {
		t.Errorf("status = %q", a.status.msg)
	}
}

func TestAppSwitchAgent(t *testing.T) {
	root := newTestRoot(t, []string{"alpha"}, nil)
	codex := filepath.Join(filepath.Dir(root), ".codex")
	if err := os.MkdirAll(codex, 0o755); err != nil {
		t.Fatal(err)
	}
	a, _ := loadedApp(t, root)

	a, _ = press(a, runes("s"))
	if !a.confirm.active || !strings.Contains(a.confirm.message, "Codex") {
		t.Fatalf("switch confirm: %q", a.confirm.message)
	}
	a, cmd := press(a, runes("y"))

	msgs := collect(cmd)
	launched, ok := findMsg[launchedMsg](msgs)
	if !ok || launched.err != nil {
		t.Fatalf("launched = %+v", launched)
	}
	model, quit := a.Update(launched)
	a = model.(App)
	if filepath.Base(a.LaunchedPath()) != "skillmgr" {
		t.Errorf("LaunchedPath = %q", a.LaunchedPath())
	}
	if _, err := os.Stat(a.LaunchedPath()); err != nil {
		t.Errorf("package not staged: %v", err)
	}
	if quit == nil {
		t.Fatal("expected quit")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Error("app should quit after relaunching")
	}
}

func TestAppLaunchFailure(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	a = update(t, a, launchedMsg{err: fmt.Errorf("copying: %w", core.ErrIO)})
	if a.LaunchedPath() != "" {
		t.Error("failed launch should not record a path")
	}
	if !strings.HasPrefix(a.status.msg, "Error:") {
		t.Errorf("status = %q", a.status.msg)
	}

	a = update(t, a, launchedMsg{})
	if a.status.msg != "Already running for this agent" {
		t.Errorf("status = %q", a.status.msg)
	}
}

func TestAppPreview(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.preview.active || a.preview.skill.Name != "alpha" {
		t.Fatal("enter should open the preview")
	}
	if !strings.Contains(a.renderHeader(), "alpha") {
		t.Errorf("header = %q", a.renderHeader())
	}

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyEscape})
	if a.preview.active {
		t.Error("esc should close the preview")
	}
}

func TestAppNoRoot(t *testing.T) {
	mgr := newTestManager(t, newTestRoot(t, nil, nil))
	a := update(t, NewApp(mgr), tea.WindowSizeMsg{Width: 120, Height: 40})
	a = update(t, a, snapshotMsg{err: fmt.Errorf("resolving: %w", core.ErrConfiguration)})

	if !strings.Contains(a.View(), "NO AGENT ROOT") {
		t.Errorf("view:\n%s", a.View())
	}
	if a.status.msg != "" {
		t.Errorf("missing root is not an error: %q", a.status.msg)
	}

	a, _ = press(a, runes("x"))
	if a.status.tasks != 0 {
		t.Error("skill keys should do nothing without a root")
	}
	a, _ = press(a, runes("p"))
	if !a.prompt.active || a.prompt.purpose != promptProject {
		t.Error("p should open the project prompt")
	}
}

func TestAppSetProject(t *testing.T) {
	a, mgr := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))
	project := t.TempDir()

	a, cmd := step(a, promptSubmitMsg{purpose: promptProject, value: project})
	_, msgs := run(t, a, cmd)
	if done, _ := findMsg[opDoneMsg](msgs); done.err != nil || !strings.HasPrefix(done.text, "Project set to") {
		t.Fatalf("opDone = %+v", done)
	}
	settings, err := mgr.Settings().Load()
	if err != nil {
		t.Fatal(err)
	}
	if settings.ProjectPath != project {
		t.Errorf("saved project = %q, want %q", settings.ProjectPath, project)
	}
}

func TestAppQuit(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))
	_, cmd := press(a, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestAppIgnoresForeignWatcher(t *testing.T) {
	a, _ := loadedApp(t, newTestRoot(t, []string{"alpha"}, nil))

	other := newTestRoot(t, nil, nil)
	w, err := newRootWatcher(other, watchDebounce)
	if err != nil {
		t.Fatal(err)
	}
	a = update(t, a, watcherStartedMsg{watcher: w})
	if a.watcher != nil {
		t.Error("a watcher for another root should be dropped")
	}
	if _, ok := waitMsg(t, w.wait(), time.Second); !ok {
		t.Error("dropped watcher should be closed")
	}
}
