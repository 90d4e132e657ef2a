package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/barysiuk/skillmgr/internal/core"
)

// previewMode is what the preview overlay currently shows.
type previewMode int

const (
	previewManifest previewMode = iota // rendered SKILL.md
	previewFiles                       // bundle file browser
	previewFile                        // a single bundle file
)

// previewRenderedMsg is sent when background glamour rendering completes.
type previewRenderedMsg struct {
	seq      int
	content  string
	renderer *glamour.TermRenderer
	width    int
}

// dirListedMsg carries a directory listing for the file browser.
type dirListedMsg struct {
	dir     string
	entries []core.AssetEntry
	err     error
}

// fileReadMsg carries the text of a bundle file.
type fileReadMsg struct {
	path    string
	content string
	err     error
}

// previewModel shows a skill's SKILL.md and lets the user browse the files
// of its bundle.
type previewModel struct {
	active  bool
	mode    previewMode
	skill   core.SkillEntry
	loading bool
	seq     int // ignores renders for a skill that is no longer shown

	viewport viewport.Model
	spinner  spinner.Model
	files    list.Model
	dir      string // directory listed in previewFiles
	file     string // path shown in previewFile

	// Cached glamour renderer, rebuilt when the width changes.
	renderer      *glamour.TermRenderer
	rendererWidth int

	width  int
	height int
}

func newPreviewModel() previewModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)
	l := list.New(nil, fileDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return previewModel{
		spinner:  s,
		viewport: viewport.New(0, 0),
		files:    l,
	}
}

func (m previewModel) setSize(width, height int) previewModel {
	m.width = width
	m.height = height
	// Title line, blank, body, blank, footer.
	bodyH := max(0, height-4)
	m.viewport.Width = width
	m.viewport.Height = bodyH
	m.files.SetSize(width, bodyH)
	return m
}

// open shows skill and starts rendering its manifest.
func (m previewModel) open(skill core.SkillEntry) (previewModel, tea.Cmd) {
	m.active = true
	m.skill = skill
	m.mode = previewManifest
	m.dir = ""
	m.file = ""
	return m.render(stripFrontmatter(skill.Content), true)
}

// refresh swaps in the latest scan of the shown skill, preferring the
// enabled copy like Manager.FindSkill does.
func (m previewModel) refresh(skills []core.SkillEntry) previewModel {
	var found *core.SkillEntry
	for i := range skills {
		if skills[i].Name != m.skill.Name {
			continue
		}
		if found == nil || skills[i].Enabled() {
			found = &skills[i]
		}
	}
	if found != nil {
		m.skill = *found
	}
	return m
}

func (m previewModel) close() previewModel {
	m.active = false
	m.loading = false
	m.seq++
	return m
}

// render converts markdown to terminal output in the background.
func (m previewModel) render(markdown string, isMarkdown bool) (previewModel, tea.Cmd) {
	m.seq++
	if !isMarkdown {
		m.loading = false
		m.viewport.SetContent(markdown)
		m.viewport.GotoTop()
		return m, nil
	}

	m.loading = true
	seq := m.seq
	w := m.width
	cached := m.renderer
	if m.rendererWidth != w {
		cached = nil
	}
	renderCmd := func() tea.Msg {
		r := cached
		if r == nil {
			var err error
			r, err = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(w),
			)
			if err != nil {
				return previewRenderedMsg{seq: seq, content: markdown}
			}
		}
		rendered, err := r.Render(markdown)
		if err != nil {
			rendered = markdown
		}
		return previewRenderedMsg{
			seq:      seq,
			content:  strings.TrimRight(rendered, "\n"),
			renderer: r,
			width:    w,
		}
	}
	return m, tea.Batch(m.spinner.Tick, renderCmd)
}

func (m previewModel) update(msg tea.Msg, app *App) (previewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case previewRenderedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		if msg.renderer != nil {
			m.renderer = msg.renderer
			m.rendererWidth = msg.width
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case dirListedMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.mode = previewFiles
		m.dir = msg.dir
		m.files.SetItems(filesToItems(msg.entries))
		m.files.Select(0)
		return m, nil

	case fileReadMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.mode = previewFile
		m.file = msg.path
		return m.render(msg.content, isMarkdownFile(msg.path))

	case tea.KeyMsg:
		return m.handleKey(msg, app)
	}

	if m.mode == previewFiles {
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg, app *App) (previewModel, tea.Cmd) {
	if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Quit) {
		switch m.mode {
		case previewFile:
			return m, listDirCmd(app.manager, filepath.Dir(m.file))
		case previewFiles:
			if filepath.Clean(m.dir) != filepath.Clean(m.skill.Dir) {
				return m, listDirCmd(app.manager, filepath.Dir(m.dir))
			}
			m.mode = previewManifest
			return m.render(stripFrontmatter(m.skill.Content), true)
		}
		return m.close(), nil
	}

	switch m.mode {
	case previewManifest:
		switch {
		case key.Matches(msg, keys.Toggle):
			return m, app.toggleSkillCmd(m.skill.Name, !m.skill.Enabled())
		case key.Matches(msg, keys.Files):
			return m, listDirCmd(app.manager, m.skill.Dir)
		}
	case previewFiles:
		if key.Matches(msg, keys.Enter) {
			it, ok := m.files.SelectedItem().(fileItem)
			if !ok {
				return m, nil
			}
			if it.entry.IsDirectory {
				return m, listDirCmd(app.manager, it.entry.Path)
			}
			return m, readFileCmd(app.manager, it.entry.Path)
		}
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// title is the header hint for the current mode.
func (m previewModel) title() string {
	switch m.mode {
	case previewFiles:
		return m.relPath(m.dir) + "/"
	case previewFile:
		return m.relPath(m.file)
	}
	return m.skill.Name
}

func (m previewModel) relPath(path string) string {
	rel, err := filepath.Rel(filepath.Dir(m.skill.Dir), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (m previewModel) view() string {
	state := mutedStyle.Render(" disabled ")
	if m.skill.Enabled() {
		state = enabledStyle.Render(" enabled ")
	}
	title := viewportTitleStyle.Render(" "+m.title()+" ") + state
	line := strings.Repeat("─", max(0, m.width-lipgloss.Width(title)-1))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", mutedStyle.Render(line))

	if m.mode == previewFiles {
		return header + "\n\n" + m.files.View()
	}
	if m.loading {
		return header + "\n\n" + m.spinner.View() + " Rendering preview..."
	}

	var meta []string
	if m.mode == previewManifest {
		if v := m.skill.Meta.Version; v != "" {
			meta = append(meta, "v"+v)
		}
		if a := m.skill.Meta.Author; a != "" {
			meta = append(meta, a)
		}
		if l := m.skill.Meta.License; l != "" {
			meta = append(meta, l)
		}
	}
	pct := previewPctStyle.Render(fmt.Sprintf(" %3.0f%% ", m.viewport.ScrollPercent()*100))
	footer := pct
	if len(meta) > 0 {
		footer += "  " + mutedStyle.Render(strings.Join(meta, " · "))
	}
	return header + "\n\n" + m.viewport.View() + "\n\n" + footer
}

func listDirCmd(manager Manager, dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := manager.ListDirectory(dir)
		return dirListedMsg{dir: dir, entries: entries, err: err}
	}
}

func readFileCmd(manager Manager, path string) tea.Cmd {
	return func() tea.Msg {
		content, err := manager.ReadTextFile(path)
		return fileReadMsg{path: path, content: content, err: err}
	}
}

// stripFrontmatter drops a leading YAML frontmatter block.
func stripFrontmatter(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return content
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content
	}
	body := rest[end+len("\n---"):]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	return strings.TrimLeft(body, "\n")
}

func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
