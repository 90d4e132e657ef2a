package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// categoryPickedMsg is sent when a destination category is chosen for skill.
type categoryPickedMsg struct {
	skill    string
	category string
}

// pickerModel chooses the category a skill moves to.
type pickerModel struct {
	active bool
	skill  string
	list   list.Model

	width  int
	height int
}

func newPickerModel() pickerModel {
	l := list.New(nil, categoryDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return pickerModel{list: l}
}

// activate opens the picker for skill with the cursor on its current category.
func (m pickerModel) activate(skill string, items []categoryItem) pickerModel {
	m.active = true
	m.skill = skill
	listItems := make([]list.Item, len(items))
	cursor := 0
	for i, it := range items {
		listItems[i] = it
		if it.current {
			cursor = i
		}
	}
	m.list.ResetFilter()
	m.list.SetItems(listItems)
	m.list.Select(cursor)
	m.list.SetSize(m.width, m.listHeight())
	return m
}

func (m pickerModel) dismiss() pickerModel {
	m.active = false
	m.skill = ""
	return m
}

func (m pickerModel) setSize(width, height int) pickerModel {
	m.width = width
	m.height = height
	m.list.SetSize(width, m.listHeight())
	return m
}

func (m pickerModel) listHeight() int {
	// Header line plus the blank line under it.
	return max(1, m.height-2)
}

func (m pickerModel) update(msg tea.Msg) (pickerModel, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(kmsg, keys.Enter):
			it, ok := m.list.SelectedItem().(categoryItem)
			if !ok {
				return m, nil
			}
			picked := categoryPickedMsg{skill: m.skill, category: it.name}
			m = m.dismiss()
			return m, func() tea.Msg { return picked }
		case key.Matches(kmsg, keys.Back):
			if m.list.IsFiltered() {
				m.list.ResetFilter()
				return m, nil
			}
			return m.dismiss(), nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) view() string {
	header := renderSectionHeader(fmt.Sprintf("MOVE %s TO", m.skill))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.list.View())
}
