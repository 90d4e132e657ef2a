package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings for the TUI.
type keyMap struct {
	Quit           key.Binding
	Help           key.Binding
	Up             key.Binding
	Down           key.Binding
	Enter          key.Binding
	Back           key.Binding
	Tab            key.Binding
	ShiftTab       key.Binding
	Toggle         key.Binding
	ToggleCategory key.Binding
	Copy           key.Binding
	Move           key.Binding
	NewCategory    key.Binding
	RenameCategory key.Binding
	DeleteCategory key.Binding
	TabLeft        key.Binding
	TabRight       key.Binding
	SwitchAgent    key.Binding
	InstallInto    key.Binding
	Shortcut       key.Binding
	Project        key.Binding
	Refresh        key.Binding
	Filter         key.Binding
	Files          key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/up", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/down", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next category"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev category"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "enable/disable"),
	),
	ToggleCategory: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all on/off"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy to other agent"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	NewCategory: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new category"),
	),
	RenameCategory: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rename category"),
	),
	DeleteCategory: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete category"),
	),
	TabLeft: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[/]", "reorder category"),
	),
	TabRight: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("[/]", "reorder category"),
	),
	SwitchAgent: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "switch agent"),
	),
	InstallInto: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "install into project"),
	),
	Shortcut: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "add /skill-manager"),
	),
	Project: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "set project"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Files: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "files"),
	),
}

// ---------------------------------------------------------------------------
// Per-view help keymaps for the help.Model component.
// Each implements help.KeyMap (ShortHelp + FullHelp).
// ---------------------------------------------------------------------------

// skillsHelpKeyMap is shown in the skills view.
type skillsHelpKeyMap struct {
	canCopy     bool
	canShortcut bool
}

func (k skillsHelpKeyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{keys.Toggle, keys.Enter, keys.Tab}
	if k.canCopy {
		bindings = append(bindings, keys.Copy)
	}
	return append(bindings, keys.Move, keys.Filter, keys.Help, keys.Quit)
}

func (k skillsHelpKeyMap) FullHelp() [][]key.Binding {
	relocate := []key.Binding{keys.SwitchAgent, keys.InstallInto, keys.Project}
	if k.canShortcut {
		relocate = append(relocate, keys.Shortcut)
	}
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Toggle, keys.ToggleCategory, keys.Enter},
		{keys.Tab, keys.ShiftTab, keys.Move, keys.Copy, keys.Filter},
		{keys.NewCategory, keys.RenameCategory, keys.DeleteCategory, keys.TabLeft},
		append(relocate, keys.Refresh, keys.Quit),
	}
}

// noRootHelpKeyMap is shown when no agent root could be resolved.
type noRootHelpKeyMap struct{}

func (k noRootHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Project, keys.InstallInto, keys.Refresh, keys.Quit}
}

func (k noRootHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// previewHelpKeyMap is shown in the SKILL.md preview.
type previewHelpKeyMap struct{}

func (k previewHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Toggle, keys.Files, keys.Back}
}

func (k previewHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// filesHelpKeyMap is shown in the bundle file browser.
type filesHelpKeyMap struct {
	viewing bool
}

func (k filesHelpKeyMap) ShortHelp() []key.Binding {
	if k.viewing {
		return []key.Binding{keys.Up, keys.Down, keys.Back}
	}
	open := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	return []key.Binding{keys.Up, keys.Down, open, keys.Back}
}

func (k filesHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// pickerHelpKeyMap is shown in the category picker.
type pickerHelpKeyMap struct{}

func (k pickerHelpKeyMap) ShortHelp() []key.Binding {
	choose := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose"))
	return []key.Binding{keys.Up, keys.Down, choose, keys.Back}
}

func (k pickerHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// confirmHelpKeyMap is shown while a confirmation dialog is open.
type confirmHelpKeyMap struct{}

func (k confirmHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{confirmYesKey, confirmNoKey}
}

func (k confirmHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// promptHelpKeyMap is shown while a text prompt is open.
type promptHelpKeyMap struct{}

func (k promptHelpKeyMap) ShortHelp() []key.Binding {
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	cancel := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return []key.Binding{submit, cancel}
}

func (k promptHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
