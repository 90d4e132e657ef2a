package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/barysiuk/skillmgr/internal/core"
)

// ---------------------------------------------------------------------------
// Skill items (skills view)
// ---------------------------------------------------------------------------

// skillItem wraps a SkillEntry for the bubbles list.
// Implements list.DefaultItem (Title + Description + FilterValue).
type skillItem struct {
	skill core.SkillEntry
}

func (i skillItem) Title() string {
	title := "○ " + i.skill.Name
	if i.skill.Enabled() {
		title = enabledStyle.Render("●") + " " + i.skill.Name
	}
	if v := i.skill.Meta.Version; v != "" {
		title += " " + mutedStyle.Render("v"+v)
	}
	return title
}

func (i skillItem) Description() string {
	if i.skill.Description != "" {
		return i.skill.Description
	}
	return "No description"
}

// FilterValue matches on name and description, like the search box of the
// desktop app.
func (i skillItem) FilterValue() string {
	return i.skill.Name + " " + i.skill.Description
}

func skillsToItems(skills []core.SkillEntry) []list.Item {
	items := make([]list.Item, len(skills))
	for i, s := range skills {
		items[i] = skillItem{skill: s}
	}
	return items
}

// ---------------------------------------------------------------------------
// Category items (move picker)
// ---------------------------------------------------------------------------

type categoryItem struct {
	name    string
	count   int
	current bool
}

func (i categoryItem) FilterValue() string { return i.name }

// categoryDelegate renders: "  > Docs  3 skills  (current)"
type categoryDelegate struct{}

func (d categoryDelegate) Height() int                             { return 1 }
func (d categoryDelegate) Spacing() int                            { return 0 }
func (d categoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d categoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(categoryItem)
	if !ok {
		return
	}

	indicator := "    "
	name := normalItemStyle.Render(ci.name)
	if index == m.Index() {
		indicator = "  > "
		name = selectedItemStyle.Render(ci.name)
	}
	badge := badgeStyle.Render(fmt.Sprintf("  %d skills", ci.count))
	current := ""
	if ci.current {
		current = "  " + enabledStyle.Render("(current)")
	}
	_, _ = fmt.Fprint(w, indicator+name+badge+current)
}

// ---------------------------------------------------------------------------
// File items (bundle file browser)
// ---------------------------------------------------------------------------

type fileItem struct {
	entry core.AssetEntry
}

func (i fileItem) FilterValue() string { return i.entry.Name }

// fileDelegate renders directories with a trailing slash.
type fileDelegate struct{}

func (d fileDelegate) Height() int                             { return 1 }
func (d fileDelegate) Spacing() int                            { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d fileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(fileItem)
	if !ok {
		return
	}

	label := fi.entry.Name
	if fi.entry.IsDirectory {
		label += "/"
	}
	indicator := "    "
	style := normalItemStyle
	if fi.entry.IsDirectory {
		style = badgeStyle
	}
	if index == m.Index() {
		indicator = "  > "
		style = selectedItemStyle
	}
	_, _ = fmt.Fprint(w, indicator+style.Render(label))
}

func filesToItems(entries []core.AssetEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = fileItem{entry: e}
	}
	return items
}
