package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tabActiveMsg is emitted after the active tab changes.
type tabActiveMsg int

// categoryTab is one entry of the tab bar.
type categoryTab struct {
	name    string
	total   int
	enabled int
}

func (t categoryTab) label() string {
	return fmt.Sprintf("%s %d/%d", t.name, t.enabled, t.total)
}

// tabsModel is the horizontal category bar.
//
//	Uncategorized 2/3 │ Docs 1/1
//	─────────────────
type tabsModel struct {
	tabs      []categoryTab
	activeTab int
	width     int
}

func newTabsModel() tabsModel {
	return tabsModel{}
}

func (m tabsModel) setWidth(width int) tabsModel {
	m.width = width
	return m
}

// setTabs replaces the tabs, keeping the active tab on the same category
// name when it still exists.
func (m tabsModel) setTabs(tabs []categoryTab) tabsModel {
	current := m.activeName()
	m.tabs = tabs
	m.activeTab = 0
	for i, t := range tabs {
		if t.name == current {
			m.activeTab = i
			break
		}
	}
	return m
}

// selectName activates the tab for name, if present.
func (m tabsModel) selectName(name string) tabsModel {
	for i, t := range m.tabs {
		if t.name == name {
			m.activeTab = i
		}
	}
	return m
}

// activeName returns the active category, or "" when there are no tabs.
func (m tabsModel) activeName() string {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return ""
	}
	return m.tabs[m.activeTab].name
}

// names returns the category names in display order.
func (m tabsModel) names() []string {
	out := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		out[i] = t.name
	}
	return out
}

// update cycles tabs on tab/shift+tab and reports whether the key was
// consumed. blocked prevents switching, e.g. while a filter is being typed.
func (m tabsModel) update(msg tea.Msg, blocked bool) (tabsModel, tea.Cmd, bool) {
	if blocked {
		return m, nil, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	n := len(m.tabs)
	if n == 0 {
		return m, nil, false
	}

	switch {
	case key.Matches(kmsg, keys.Tab):
		m.activeTab = (m.activeTab + 1) % n
	case key.Matches(kmsg, keys.ShiftTab):
		m.activeTab = (m.activeTab - 1 + n) % n
	default:
		return m, nil, false
	}
	active := m.activeTab
	return m, func() tea.Msg { return tabActiveMsg(active) }, true
}

// view renders the bar and an underline under the active tab. Tabs before
// the active one are dropped when the bar is wider than the view.
func (m tabsModel) view() string {
	if len(m.tabs) == 0 {
		return ""
	}

	sep := tabSeparatorStyle.Render("│")
	rendered := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.activeTab {
			rendered[i] = tabActiveStyle.Render(t.label())
		} else {
			rendered[i] = tabInactiveStyle.Render(t.label())
		}
	}

	first := 0
	prefix := ""
	for m.width > 0 && first < m.activeTab &&
		lipgloss.Width(strings.Join(rendered[first:m.activeTab+1], sep))+2 > m.width {
		first++
		prefix = mutedStyle.Render("…")
	}

	line := " " + prefix + strings.Join(rendered[first:], sep)
	if prefix == "" {
		line = " " + line
	}

	offset := 2
	for i := first; i < m.activeTab; i++ {
		offset += lipgloss.Width(rendered[i]) + lipgloss.Width(sep)
	}
	underline := strings.Repeat(" ", offset) +
		tabUnderlineStyle.Render(strings.Repeat("─", lipgloss.Width(rendered[m.activeTab])))

	return line + "\n" + underline
}
