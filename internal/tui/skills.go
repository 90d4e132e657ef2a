package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/barysiuk/skillmgr/internal/core"
)

// skillsModel is the main view: category tabs over the skills of the
// active category, with the info sidebar on the right.
type skillsModel struct {
	width  int
	height int

	tabs    tabsModel
	list    list.Model
	sidebar sidebarModel

	snap        *core.Snapshot
	canCopy     bool
	showSidebar bool

	// pendingTab is selected once a reload shows it, e.g. after a rename.
	pendingTab string
}

func newSkillsModel() skillsModel {
	l := list.New(nil, newSkillDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.SetShowPagination(true)

	return skillsModel{
		tabs:    newTabsModel(),
		list:    l,
		sidebar: newSidebarModel(),
	}
}

func (m skillsModel) setSize(width, height int) skillsModel {
	m.width = width
	m.height = height
	m.showSidebar = width-sidebarWidth-1 >= minContentWidth
	listW := width
	if m.showSidebar {
		listW = width - sidebarWidth - 1
	}
	m.tabs = m.tabs.setWidth(listW)
	// Tab bar (2 lines) and a blank line above the list.
	m.list.SetSize(listW, max(1, height-3))
	m.sidebar = m.sidebar.setHeight(height)
	return m
}

func (m skillsModel) setData(snap *core.Snapshot, available []core.AgentKind, canShortcut bool) skillsModel {
	m.snap = snap

	names := snap.Categories.CategoryOrder
	tabs := make([]categoryTab, len(names))
	for i, name := range names {
		total, enabled := snap.Counts(name)
		tabs[i] = categoryTab{name: name, total: total, enabled: enabled}
	}
	m.tabs = m.tabs.setTabs(tabs)
	if m.pendingTab != "" && snap.Categories.Has(m.pendingTab) {
		m.tabs = m.tabs.selectName(m.pendingTab)
		m.pendingTab = ""
	}

	m.sidebar = m.sidebar.setData(snap, available, canShortcut)
	m.canCopy = m.sidebar.otherAgentReady()
	return m.refreshItems()
}

// refreshItems loads the active category into the list, keeping the cursor
// on the same skill when possible.
func (m skillsModel) refreshItems() skillsModel {
	if m.snap == nil {
		m.list.SetItems(nil)
		return m
	}
	selected := ""
	if s, ok := m.selected(); ok {
		selected = s.Name
	}

	skills := m.snap.SkillsIn(m.tabs.activeName())
	m.list.SetItems(skillsToItems(skills))
	idx := slices.IndexFunc(skills, func(s core.SkillEntry) bool { return s.Name == selected })
	if idx >= 0 {
		m.list.Select(idx)
	} else if m.list.Index() >= len(skills) {
		m.list.Select(max(0, len(skills)-1))
	}
	return m
}

func (m skillsModel) selected() (core.SkillEntry, bool) {
	si, ok := m.list.SelectedItem().(skillItem)
	if !ok {
		return core.SkillEntry{}, false
	}
	return si.skill, true
}

func (m skillsModel) filtering() bool {
	return m.list.SettingFilter()
}

func (m skillsModel) update(msg tea.Msg, app *App) (skillsModel, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.SettingFilter() || m.snap == nil {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var consumed bool
	var cmd tea.Cmd
	m.tabs, cmd, consumed = m.tabs.update(kmsg, m.list.IsFiltered())
	if consumed {
		m.list.Select(0)
		return m.refreshItems(), cmd
	}

	category := m.tabs.activeName()
	skill, hasSkill := m.selected()

	switch {
	case key.Matches(kmsg, keys.Toggle):
		if hasSkill {
			return m, app.toggleSkillCmd(skill.Name, !skill.Enabled())
		}
		return m, nil

	case key.Matches(kmsg, keys.ToggleCategory):
		total, enabled := m.snap.Counts(category)
		if total == 0 {
			return m, nil
		}
		return m, app.toggleCategoryCmd(category, enabled < total)

	case key.Matches(kmsg, keys.Enter):
		if hasSkill {
			return m, app.openPreview(skill)
		}
		return m, nil

	case key.Matches(kmsg, keys.Copy):
		if !hasSkill {
			return m, nil
		}
		if !m.canCopy {
			return m, app.warn(fmt.Sprintf("No %s directory in this project", m.snap.Context.Kind.Other().DirName()))
		}
		return m, app.inspectCopyCmd(skill)

	case key.Matches(kmsg, keys.Move):
		if hasSkill {
			app.picker = app.picker.activate(skill.Name, m.categoryItems(skill.Name))
		}
		return m, nil

	case key.Matches(kmsg, keys.NewCategory):
		return m, app.openPrompt(promptNewCategory, "New category", "", "", "Category name")

	case key.Matches(kmsg, keys.RenameCategory):
		return m, app.openPrompt(promptRenameCategory, "Rename "+category, category, category, "Category name")

	case key.Matches(kmsg, keys.DeleteCategory):
		return m, app.confirmDeleteCategory(category, m.tabs.names())

	case key.Matches(kmsg, keys.TabLeft), key.Matches(kmsg, keys.TabRight):
		delta := 1
		if key.Matches(kmsg, keys.TabLeft) {
			delta = -1
		}
		order, ok := moveName(m.tabs.names(), category, delta)
		if !ok {
			return m, nil
		}
		return m, app.editCategoriesCmd("", func(cfg *core.CategoryConfig) error {
			return cfg.Reorder(order)
		})

	case key.Matches(kmsg, keys.SwitchAgent):
		return m, app.confirmSwitchAgent()

	case key.Matches(kmsg, keys.InstallInto):
		return m, app.openPrompt(promptInstallInto, "Install into project", "", "", "/path/to/project")

	case key.Matches(kmsg, keys.Shortcut):
		if m.sidebar.canShortcut {
			return m, app.confirmShortcut()
		}
		return m, nil

	case key.Matches(kmsg, keys.Project):
		return m, app.openPrompt(promptProject, "Fallback project", "", "", "/path/to/project")

	case key.Matches(kmsg, keys.Refresh):
		return m, app.loadSnapshotCmd
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// categoryItems lists every category as a move destination for skill.
func (m skillsModel) categoryItems(skill string) []categoryItem {
	current, _ := m.snap.Categories.CategoryOf(skill)
	var items []categoryItem
	for _, name := range m.snap.Categories.CategoryOrder {
		total, _ := m.snap.Counts(name)
		items = append(items, categoryItem{name: name, count: total, current: name == current})
	}
	return items
}

func (m skillsModel) view() string {
	if m.snap == nil {
		return mutedStyle.Render("  Loading...")
	}

	var body string
	if len(m.list.Items()) == 0 {
		body = "\n" + mutedStyle.Render("  No skills in this category.")
		if len(m.snap.Skills) == 0 {
			body = "\n" + mutedStyle.Render("  No skills found in "+shortenPath(m.snap.Context.BaseDir)+".") +
				"\n" + mutedStyle.Render("  Add bundles under skills/<name>/SKILL.md.")
		}
	} else {
		body = m.list.View()
	}
	main := m.tabs.view() + "\n\n" + body

	if !m.showSidebar {
		return main
	}
	listW := m.width - sidebarWidth - 1
	main = lipgloss.NewStyle().Width(listW).Height(m.height).Render(clampHeight(clampWidth(main, listW), m.height))
	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", m.sidebar.view())
}

// moveName returns order with name shifted by delta positions.
func moveName(order []string, name string, delta int) ([]string, bool) {
	i := slices.Index(order, name)
	j := i + delta
	if i < 0 || j < 0 || j >= len(order) {
		return nil, false
	}
	out := slices.Clone(order)
	out[i], out[j] = out[j], out[i]
	return out, true
}

// noRootView explains how to point the app at a project.
func noRootView(err error) string {
	var b strings.Builder
	b.WriteString(renderSectionHeader("NO AGENT ROOT") + "\n\n")
	b.WriteString(warningStyle.Render("  skillmgr is not installed inside a .claude or .codex directory,") + "\n")
	b.WriteString(warningStyle.Render("  and no fallback project is saved.") + "\n\n")
	b.WriteString(mutedStyle.Render("  [p] choose a project to manage its .claude directory") + "\n")
	b.WriteString(mutedStyle.Render("  [i] install skillmgr into a project and start it there") + "\n")
	if err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+err.Error()))
	}
	return b.String()
}
