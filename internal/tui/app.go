// Package tui is the interactive interface of skillmgr.
package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/barysiuk/skillmgr/internal/core"
	"github.com/barysiuk/skillmgr/internal/logger"
)

// Manager is the subset of core.Manager the interface drives.
type Manager interface {
	Snapshot() (*core.Snapshot, error)
	AvailableAgents() []core.AgentKind
	CanOfferCommandShortcut() bool
	SetSkillEnabled(name string, enabled bool) error
	SetCategoryEnabled(category string, enabled bool) error
	EditCategories(edit func(cfg *core.CategoryConfig) error) (*core.CategoryConfig, error)
	InspectCopy(name string, enabled bool) (core.ConflictInfo, error)
	CopySkillToOtherAgent(name string, enabled bool) error
	SwitchAgentType(kind core.AgentKind) (string, error)
	InstallInto(targetProject string) (string, error)
	InstallCommandShortcut() (string, error)
	SetProjectPath(path string) (string, error)
	ReadTextFile(path string) (string, error)
	ListDirectory(path string) ([]core.AssetEntry, error)
}

// App is the root Bubbletea model.
type App struct {
	manager Manager

	width  int
	height int
	ready  bool

	// Latest state read from disk. snap is nil until the first load, or
	// when the agent root cannot be resolved (loadErr is set then).
	snap        *core.Snapshot
	loadErr     error
	available   []core.AgentKind
	canShortcut bool

	// Sub-models.
	skills  skillsModel
	preview previewModel
	picker  pickerModel
	prompt  promptModel
	confirm confirmModel
	status  statusBarModel
	help    help.Model

	watcher *rootWatcher

	// launched is the relocated package started before quitting.
	launched string
}

// NewApp creates the interface for manager.
func NewApp(manager Manager) App {
	h := help.New()
	h.ShortSeparator = "  |  "

	return App{
		manager: manager,
		skills:  newSkillsModel(),
		preview: newPreviewModel(),
		picker:  newPickerModel(),
		prompt:  newPromptModel(),
		confirm: newConfirmModel(),
		status:  newStatusBarModel(),
		help:    h,
	}
}

// LaunchedPath returns the package started by a switch or install, or ""
// when the app quit without relaunching.
func (a App) LaunchedPath() string {
	return a.launched
}

// Close releases the filesystem watcher.
func (a App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

// --- Messages ---

// snapshotMsg delivers a fresh read of the agent root.
type snapshotMsg struct {
	snap        *core.Snapshot
	available   []core.AgentKind
	canShortcut bool
	err         error
}

// opDoneMsg ends a mutating operation; the root is always reloaded after.
type opDoneMsg struct {
	text string
	kind statusMsgKind
	err  error
}

// copyInspectedMsg carries the conflict check that precedes a copy.
type copyInspectedMsg struct {
	skill core.SkillEntry
	info  core.ConflictInfo
	err   error
}

// launchedMsg ends a relocation.
type launchedMsg struct {
	path string
	err  error
}

// watcherStartedMsg hands a new watcher to the app.
type watcherStartedMsg struct {
	watcher *rootWatcher
	err     error
}

type errMsg struct {
	err error
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err: err} }
}

// --- Init / Update / View ---

func (a App) Init() tea.Cmd {
	return a.loadSnapshotCmd
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.status = a.status.setWidth(msg.Width)
		a.propagateSize()
		if a.preview.active && a.preview.mode != previewFiles {
			// Re-wrap for the new width.
			return a.reopenPreview()
		}
		return a, nil

	case snapshotMsg:
		return a.applySnapshot(msg)

	case watcherStartedMsg:
		if msg.err != nil {
			logger.For("tui").WithError(msg.err).Warn("live reload disabled")
			return a, nil
		}
		if a.snap == nil || msg.watcher.root != a.snap.Context.BaseDir {
			_ = msg.watcher.Close()
			return a, nil
		}
		a.Close()
		a.watcher = msg.watcher
		return a, a.watcher.wait()

	case rootChangedMsg:
		if a.watcher == nil || msg.root != a.watcher.root {
			return a, nil
		}
		return a, tea.Batch(a.loadSnapshotCmd, a.watcher.wait())

	case taskStartedMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.update(msg)
		return a, cmd

	case opDoneMsg:
		a.status, _ = a.status.update(taskDoneMsg{})
		var cmd tea.Cmd
		if msg.err != nil {
			a.status, cmd = a.status.showErr(msg.err)
		} else if msg.text != "" {
			a.status, cmd = a.status.showMsg(msg.text, msg.kind)
		}
		return a, tea.Batch(cmd, a.loadSnapshotCmd)

	case copyInspectedMsg:
		a.status, _ = a.status.update(taskDoneMsg{})
		return a.handleCopyInspected(msg)

	case launchedMsg:
		a.status, _ = a.status.update(taskDoneMsg{})
		if msg.err != nil {
			var cmd tea.Cmd
			a.status, cmd = a.status.showErr(msg.err)
			return a, cmd
		}
		if msg.path == "" {
			var cmd tea.Cmd
			a.status, cmd = a.status.showMsg("Already running for this agent", statusWarning)
			return a, cmd
		}
		a.launched = msg.path
		a.Close()
		return a, tea.Quit

	case promptSubmitMsg:
		return a.handlePromptSubmit(msg)

	case categoryPickedMsg:
		skill, category := msg.skill, msg.category
		return a, a.editCategoriesCmd("Moved "+skill+" to "+category, func(cfg *core.CategoryConfig) error {
			return cfg.MoveSkill(skill, category)
		})

	case errMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.showErr(msg.err)
		return a, cmd

	case statusDismissMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.update(msg)
		return a, cmd

	case confirmResultMsg:
		// Callers react through the command they passed to show.
		return a, nil

	case previewRenderedMsg, dirListedMsg, fileReadMsg:
		if !a.preview.active {
			return a, nil
		}
		var cmd tea.Cmd
		a.preview, cmd = a.preview.update(msg, &a)
		return a, cmd

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's ID.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.status, cmd = a.status.update(msg)
		cmds = append(cmds, cmd)
		if a.preview.active {
			a.preview, cmd = a.preview.update(msg, &a)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blinks and list filter results.
	if a.prompt.active {
		var cmd tea.Cmd
		a.prompt, cmd, _ = a.prompt.update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	if a.picker.active {
		a.picker, cmd = a.picker.update(msg)
		return a, cmd
	}
	a.skills, cmd = a.skills.update(msg, &a)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals intercept all keys when active.
	if a.confirm.active {
		var cmd tea.Cmd
		a.confirm, cmd, _ = a.confirm.update(msg)
		return a, cmd
	}
	if a.prompt.active {
		var cmd tea.Cmd
		a.prompt, cmd, _ = a.prompt.update(msg)
		return a, cmd
	}
	if a.picker.active {
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.picker, cmd = a.picker.update(msg)
		return a, cmd
	}
	if a.preview.active {
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.preview, cmd = a.preview.update(msg, &a)
		if !a.preview.active {
			a.propagateSize()
		}
		return a, cmd
	}

	if a.skills.filtering() {
		var cmd tea.Cmd
		a.skills, cmd = a.skills.update(msg, &a)
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.Close()
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.propagateSize()
		return a, nil
	}

	if a.snap == nil {
		switch {
		case key.Matches(msg, keys.Project):
			return a, a.openPrompt(promptProject, "Fallback project", "", "", "/path/to/project")
		case key.Matches(msg, keys.InstallInto):
			return a, a.openPrompt(promptInstallInto, "Install into project", "", "", "/path/to/project")
		case key.Matches(msg, keys.Refresh):
			return a, a.loadSnapshotCmd
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.skills, cmd = a.skills.update(msg, &a)
	return a, cmd
}

func (a App) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.snap = nil
		a.loadErr = msg.err
		if !errors.Is(msg.err, core.ErrConfiguration) {
			var cmd tea.Cmd
			a.status, cmd = a.status.showErr(msg.err)
			return a, cmd
		}
		return a, nil
	}

	a.loadErr = nil
	a.snap = msg.snap
	a.available = msg.available
	a.canShortcut = msg.canShortcut
	a.skills = a.skills.setData(msg.snap, msg.available, msg.canShortcut)
	if a.preview.active {
		a.preview = a.preview.refresh(msg.snap.Skills)
	}
	if a.ready {
		a.propagateSize()
	}

	root := msg.snap.Context.BaseDir
	if a.watcher != nil && a.watcher.root == root {
		return a, nil
	}
	return a, func() tea.Msg {
		w, err := newRootWatcher(root, watchDebounce)
		return watcherStartedMsg{watcher: w, err: err}
	}
}

func (a App) reopenPreview() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.preview.mode {
	case previewManifest:
		a.preview, cmd = a.preview.render(stripFrontmatter(a.preview.skill.Content), true)
	case previewFile:
		cmd = readFileCmd(a.manager, a.preview.file)
	}
	return a, cmd
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.renderHeader()
	statusBar := a.status.view(a.renderHelp())

	textW, textH := a.innerContentSize()
	innerW := max(0, a.width-contentStyle.GetHorizontalBorderSize())
	innerH := max(0, textH+contentStyle.GetVerticalPadding())

	var content string
	switch {
	case a.confirm.active:
		content = a.confirm.view()
	case a.prompt.active:
		content = a.prompt.view()
	case a.picker.active:
		content = a.picker.view()
	case a.preview.active:
		content = a.preview.view()
	case a.snap == nil && a.loadErr != nil:
		content = noRootView(a.loadErr)
	default:
		content = a.skills.view()
	}

	content = clampWidth(content, textW)
	content = clampHeight(content, textH)

	styled := contentStyle.
		Width(innerW).
		Height(innerH).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, styled, statusBar)
}

func (a App) renderHeader() string {
	logo := logoStyle.Render("skillmgr")

	var agent, path string
	if a.snap != nil {
		agent = agentBadgeStyle.Render(a.snap.Context.Kind.DisplayName())
		path = headerPathStyle.Render(shortenPath(a.snap.Context.BaseDir))
	}

	var hints string
	switch {
	case a.confirm.active:
		hints = "Confirm"
	case a.prompt.active:
		hints = a.prompt.title
	case a.picker.active:
		hints = "Move Skill"
	case a.preview.active:
		hints = a.preview.title()
	case a.snap != nil:
		hints = a.skills.tabs.activeName()
	}
	hints = headerHintStyle.Render(hints)

	left := lipgloss.JoinHorizontal(lipgloss.Top, " ", logo, " ", agent, path)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(hints)-1)
	return ansi.Truncate(left+strings.Repeat(" ", gap)+hints, a.width, "")
}

func (a App) renderHelp() string {
	var km help.KeyMap
	switch {
	case a.confirm.active:
		km = confirmHelpKeyMap{}
	case a.prompt.active:
		km = promptHelpKeyMap{}
	case a.picker.active:
		km = pickerHelpKeyMap{}
	case a.preview.active:
		if a.preview.mode == previewManifest {
			km = previewHelpKeyMap{}
		} else {
			km = filesHelpKeyMap{viewing: a.preview.mode == previewFile}
		}
	case a.snap == nil:
		km = noRootHelpKeyMap{}
	default:
		km = skillsHelpKeyMap{canCopy: a.skills.canCopy, canShortcut: a.canShortcut}
	}
	return " " + helpStyle.Render(a.help.View(km))
}

func (a *App) propagateSize() {
	w, h := a.innerContentSize()
	a.skills = a.skills.setSize(w, h)
	a.preview = a.preview.setSize(w, h)
	a.picker = a.picker.setSize(w, h)
	a.prompt = a.prompt.setSize(w, h)
	a.confirm = a.confirm.setSize(w, h)
}

// innerContentSize computes the text area inside contentStyle after the
// header and status bar are laid out.
func (a App) innerContentSize() (width, height int) {
	// JoinVertical stacks header, box and status bar.
	chromeH := lipgloss.Height(a.renderHeader()) + lipgloss.Height(a.renderHelp())

	width = max(0, a.width-contentStyle.GetHorizontalFrameSize())
	height = max(0, a.height-chromeH-contentStyle.GetVerticalFrameSize())
	return width, height
}

// shortenPath returns a display-friendly path using ~ for the home dir.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}

// clampHeight truncates content to at most maxLines lines so a sub-model
// can never push the header off-screen.
func clampHeight(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}
	return strings.Join(lines[:maxLines], "\n")
}

// clampWidth truncates each line to maxWidth visible columns (ANSI aware),
// which keeps lipgloss from wrapping inside a fixed-width box.
func clampWidth(content string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > maxWidth {
			lines[i] = ansi.Truncate(line, maxWidth, "")
		}
	}
	return strings.Join(lines, "\n")
}
