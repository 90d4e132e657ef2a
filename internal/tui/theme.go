package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#D97706") // Amber
	colorSecondary = lipgloss.Color("#FBBF24") // Light amber
	colorSuccess   = lipgloss.Color("#10B981") // Green (enabled)
	colorDanger    = lipgloss.Color("#EF4444") // Red (errors)
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorText      = lipgloss.Color("#D1D5DB")
	colorBright    = lipgloss.Color("#F3F4F6")
)

// Shared styles used across TUI views.
var (
	// Header bar: "skillmgr  Claude Code  ~/code/my-app/.claude"
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	agentBadgeStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	headerPathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBright).
			Padding(0, 1)

	headerHintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Main content area.
	contentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	// NOTE: No MarginBottom; use explicit \n in view functions for predictable height.
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorMuted)

	sectionRuleStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	enabledStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	// Category tabs.
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	tabUnderlineStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)

	// Side panel.
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	sidebarLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	sidebarValueStyle = lipgloss.NewStyle().
				Foreground(colorBright)

	// Status bar zones.
	statusSuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	statusWarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	statusTaskStyle    = lipgloss.NewStyle().Foreground(colorSecondary)

	// Viewport overlay (SKILL.md preview).
	viewportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText).
				Background(colorBorder).
				Padding(0, 1)

	previewPctStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBorder)

	// Modal dialogs.
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	dialogButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(colorMuted).
				Padding(0, 2)

	dialogActiveButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(colorDanger).
				Padding(0, 2).
				Bold(true)
)

// renderSectionHeader renders a section label with short rules on both sides:
// "  ── SKILLS ──"
func renderSectionHeader(label string) string {
	rule := sectionRuleStyle.Render("──")
	text := sectionHeaderStyle.Render(" " + label + " ")
	return "  " + rule + text + rule
}

// newSkillDelegate creates a DefaultDelegate with a vertical selection bar,
// title and description on two lines.
func newSkillDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.NormalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBright).
		Padding(0, 0, 0, 2)

	d.Styles.NormalDesc = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 0, 0, 2)

	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorPrimary).
		Foreground(colorSecondary).
		Bold(true).
		Padding(0, 0, 0, 1)

	d.Styles.SelectedDesc = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorPrimary).
		Foreground(colorMuted).
		Padding(0, 0, 0, 1)

	d.Styles.DimmedTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorMuted).
		Padding(0, 0, 0, 2)

	d.Styles.DimmedDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4D4D4D")).
		Padding(0, 0, 0, 2)

	d.SetSpacing(1)

	return d
}
