package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/barysiuk/skillmgr/internal/core"
)

// sidebarWidth is the visible column count for the sidebar panel.
const sidebarWidth = 34

// minContentWidth is the narrowest skill list that still gets a sidebar
// next to it. Below that the sidebar is hidden.
const minContentWidth = 50

// sidebarModel renders the info panel next to the skill list.
//
//	Agent:    Claude Code
//	Root:     ~/code/app/.claude
//	Other:    Codex
//
//	Skills:   5 (3 enabled)
//	Issues:   1
type sidebarModel struct {
	height int

	ctx         core.AgentContext
	available   []core.AgentKind
	total       int
	enabled     int
	categories  int
	issues      int
	canShortcut bool
}

func newSidebarModel() sidebarModel {
	return sidebarModel{}
}

func (m sidebarModel) setHeight(height int) sidebarModel {
	m.height = height
	return m
}

func (m sidebarModel) setData(snap *core.Snapshot, available []core.AgentKind, canShortcut bool) sidebarModel {
	m.ctx = snap.Context
	m.available = available
	m.total = len(snap.Skills)
	m.enabled = 0
	for _, s := range snap.Skills {
		if s.Enabled() {
			m.enabled++
		}
	}
	m.categories = len(snap.Categories.Keys())
	m.issues = len(snap.Issues)
	m.canShortcut = canShortcut
	return m
}

// otherAgentReady reports whether the sibling agent root exists, which is
// what copying needs.
func (m sidebarModel) otherAgentReady() bool {
	other := m.ctx.Kind.Other()
	for _, k := range m.available {
		if k == other && other != core.AgentNone {
			return true
		}
	}
	return false
}

func (m sidebarModel) view() string {
	innerW := sidebarWidth - panelStyle.GetHorizontalFrameSize() - 2

	row := func(label, value string) string {
		return sidebarLabelStyle.Render(fmt.Sprintf("%-8s", label)) + " " +
			sidebarValueStyle.Render(ansi.Truncate(value, innerW-9, "…"))
	}

	var lines []string
	lines = append(lines, row("Agent:", m.ctx.Kind.DisplayName()))
	lines = append(lines, row("Root:", truncateLeft(shortenPath(m.ctx.BaseDir), innerW-9)))

	other := m.ctx.Kind.Other()
	switch {
	case other == core.AgentNone:
	case m.otherAgentReady():
		lines = append(lines, row("Other:", other.DisplayName()))
	default:
		lines = append(lines, row("Other:", "none")+" "+
			mutedStyle.Render("("+other.DirName()+" missing)"))
	}

	lines = append(lines, "")
	lines = append(lines, row("Skills:", fmt.Sprintf("%d (%d enabled)", m.total, m.enabled)))
	lines = append(lines, row("Groups:", fmt.Sprintf("%d", m.categories)))
	if m.issues > 0 {
		lines = append(lines, sidebarLabelStyle.Render(fmt.Sprintf("%-8s", "Issues:"))+" "+
			warningStyle.Render(fmt.Sprintf("%d skipped", m.issues)))
	}

	if m.canShortcut {
		lines = append(lines, "")
		lines = append(lines, mutedStyle.Italic(true).Render("[S] add /skill-manager"))
	}

	return renderPanel("Info", strings.Join(lines, "\n"), sidebarWidth, m.height)
}

// renderPanel draws a bordered box of the given outer size with a title on
// its first line.
func renderPanel(title, content string, width, height int) string {
	body := panelTitleStyle.Render(title) + "\n\n" + content
	innerW := max(0, width-panelStyle.GetHorizontalBorderSize())
	innerH := max(0, height-panelStyle.GetVerticalBorderSize())
	body = clampHeight(clampWidth(body, innerW-2), innerH)
	return panelStyle.
		Width(innerW).
		Height(innerH).
		Padding(0, 1).
		Render(body)
}

// truncateLeft keeps the tail of s, which is the informative part of a path.
func truncateLeft(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[1:]
	}
	return "…" + string(r)
}
