package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/barysiuk/skillmgr/internal/core"
)

// loadSnapshotCmd reads the agent root. It is also the reload after every
// operation, so the view never trusts a partially applied change.
func (a App) loadSnapshotCmd() tea.Msg {
	snap, err := a.manager.Snapshot()
	if err != nil {
		return snapshotMsg{err: err}
	}
	return snapshotMsg{
		snap:        snap,
		available:   a.manager.AvailableAgents(),
		canShortcut: a.manager.CanOfferCommandShortcut(),
	}
}

// runTask shows label in the status bar, then runs op. op must answer with
// a message that ends the task.
func runTask(label string, op tea.Cmd) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return taskStartedMsg{label: label} },
		op,
	)
}

func (a *App) warn(text string) tea.Cmd {
	var cmd tea.Cmd
	a.status, cmd = a.status.showMsg(text, statusWarning)
	return cmd
}

func (a *App) toggleSkillCmd(name string, enable bool) tea.Cmd {
	verb, done := "disabling", "Disabled"
	if enable {
		verb, done = "enabling", "Enabled"
	}
	m := a.manager
	return runTask(verb, func() tea.Msg {
		if err := m.SetSkillEnabled(name, enable); err != nil {
			return opDoneMsg{err: fmt.Errorf("%s %s: %w", verb, name, err)}
		}
		return opDoneMsg{text: done + " " + name}
	})
}

func (a *App) toggleCategoryCmd(category string, enable bool) tea.Cmd {
	verb, done := "disabling", "Disabled all in"
	if enable {
		verb, done = "enabling", "Enabled all in"
	}
	m := a.manager
	return runTask(verb, func() tea.Msg {
		if err := m.SetCategoryEnabled(category, enable); err != nil {
			return opDoneMsg{err: fmt.Errorf("%s %s: %w", verb, category, err)}
		}
		return opDoneMsg{text: done + " " + category}
	})
}

// editCategoriesCmd applies edit to the saved category config. An empty
// success text reloads silently.
func (a *App) editCategoriesCmd(success string, edit func(cfg *core.CategoryConfig) error) tea.Cmd {
	m := a.manager
	return runTask("saving", func() tea.Msg {
		if _, err := m.EditCategories(edit); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{text: success}
	})
}

func (a *App) openPreview(skill core.SkillEntry) tea.Cmd {
	var cmd tea.Cmd
	a.preview, cmd = a.preview.open(skill)
	return cmd
}

func (a *App) openPrompt(purpose promptPurpose, title, subject, value, placeholder string) tea.Cmd {
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.show(purpose, title, subject, value, placeholder)
	return cmd
}

func (a *App) inspectCopyCmd(skill core.SkillEntry) tea.Cmd {
	m := a.manager
	return runTask("checking", func() tea.Msg {
		info, err := m.InspectCopy(skill.Name, skill.Enabled())
		return copyInspectedMsg{skill: skill, info: info, err: err}
	})
}

func (a App) handleCopyInspected(msg copyInspectedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.err != nil {
		a.status, cmd = a.status.showErr(msg.err)
		return a, cmd
	}

	target := msg.info.TargetAgent.DisplayName()
	if msg.info.Exists {
		text := fmt.Sprintf("%s already exists in %s (%s, modified %s)",
			msg.skill.Name, target, msg.info.TargetState,
			msg.info.TargetModified.Local().Format("2006-01-02 15:04"))
		a.status, cmd = a.status.showMsg(text, statusWarning)
		return a, cmd
	}

	name, enabled := msg.skill.Name, msg.skill.Enabled()
	m := a.manager
	copyCmd := func() tea.Msg {
		if err := m.CopySkillToOtherAgent(name, enabled); err != nil {
			return opDoneMsg{err: fmt.Errorf("copying %s: %w", name, err)}
		}
		return opDoneMsg{text: fmt.Sprintf("Copied %s to %s", name, target)}
	}
	a.confirm = a.confirm.show(
		fmt.Sprintf("Copy %s to %s?", name, target),
		"The copy is enabled there.",
		runTask("copying", copyCmd),
	).withYesLabel("Copy")
	return a, nil
}

func (a *App) confirmDeleteCategory(category string, order []string) tea.Cmd {
	if len(order) <= 1 {
		return a.warn("The last category cannot be deleted")
	}
	dest := order[0]
	if dest == category {
		dest = order[1]
	}
	a.confirm = a.confirm.show(
		fmt.Sprintf("Delete category %s?", category),
		fmt.Sprintf("Its skills move to %s.", dest),
		a.editCategoriesCmd("Deleted "+category, func(cfg *core.CategoryConfig) error {
			return cfg.RemoveCategory(category)
		}),
	).withYesLabel("Delete")
	return nil
}

func (a *App) confirmSwitchAgent() tea.Cmd {
	if a.snap == nil || !a.snap.Context.InAgentTree() {
		return a.warn("Not running from an agent directory")
	}
	target := a.snap.Context.Kind.Other()
	dest := filepath.Join(a.snap.Context.ProjectRoot, target.DirName())
	a.confirm = a.confirm.show(
		fmt.Sprintf("Switch to %s?", target.DisplayName()),
		fmt.Sprintf("skillmgr is copied into %s, started there, and this window closes.", shortenPath(dest)),
		a.launchCmd("switching", func(m Manager) (string, error) {
			return m.SwitchAgentType(target)
		}),
	).withYesLabel("Switch")
	return nil
}

func (a *App) confirmInstallInto(project string) tea.Cmd {
	dest := filepath.Join(project, core.AgentClaude.DirName())
	a.confirm = a.confirm.show(
		fmt.Sprintf("Install into %s?", shortenPath(project)),
		fmt.Sprintf("skillmgr is copied into %s, started there, and this window closes.", shortenPath(dest)),
		a.launchCmd("installing", func(m Manager) (string, error) {
			return m.InstallInto(project)
		}),
	).withYesLabel("Install")
	return nil
}

func (a *App) confirmShortcut() tea.Cmd {
	m := a.manager
	a.confirm = a.confirm.show(
		"Add the /skill-manager command?",
		"Claude Code can then open skillmgr for this project.",
		runTask("writing", func() tea.Msg {
			path, err := m.InstallCommandShortcut()
			if err != nil {
				return opDoneMsg{err: fmt.Errorf("installing command: %w", err)}
			}
			return opDoneMsg{text: "Wrote " + shortenPath(path)}
		}),
	).withYesLabel("Add")
	return nil
}

func (a *App) launchCmd(label string, run func(m Manager) (string, error)) tea.Cmd {
	m := a.manager
	return runTask(label, func() tea.Msg {
		path, err := run(m)
		return launchedMsg{path: path, err: err}
	})
}

func (a App) handlePromptSubmit(msg promptSubmitMsg) (tea.Model, tea.Cmd) {
	value := msg.value
	switch msg.purpose {
	case promptNewCategory:
		a.skills.pendingTab = value
		return a, a.editCategoriesCmd("Added "+value, func(cfg *core.CategoryConfig) error {
			return cfg.AddCategory(value)
		})

	case promptRenameCategory:
		if value == msg.subject {
			return a, nil
		}
		old := msg.subject
		a.skills.pendingTab = value
		return a, a.editCategoriesCmd("Renamed "+old+" to "+value, func(cfg *core.CategoryConfig) error {
			return cfg.RenameCategory(old, value)
		})

	case promptInstallInto:
		return a, a.confirmInstallInto(value)

	case promptProject:
		m := a.manager
		return a, runTask("saving", func() tea.Msg {
			abs, err := m.SetProjectPath(value)
			if err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{text: "Project set to " + shortenPath(abs)}
		})
	}
	return a, nil
}
