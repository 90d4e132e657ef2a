package core

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"text/template"
)

const shortcutFileName = "skill-manager.md"

//go:embed templates/*.md.tmpl
var shortcutTemplates embed.FS

// Shortcuts installs a slash command that lets the agent open this
// application from inside the project.
type Shortcuts struct {
	goos string
}

// NewShortcuts creates a Shortcuts installer for the running platform.
func NewShortcuts() *Shortcuts {
	return &Shortcuts{goos: runtime.GOOS}
}

// Path returns where the shortcut lives under an agent root.
func (s *Shortcuts) Path(ctx AgentContext) string {
	return filepath.Join(ctx.BaseDir, commandsDirName, shortcutFileName)
}

// CanOffer reports whether installing the shortcut makes sense: only
// Claude reads commands/, and an existing shortcut is never offered again.
func (s *Shortcuts) CanOffer(ctx AgentContext) bool {
	if ctx.Kind != AgentClaude || ctx.BaseDir == "" {
		return false
	}
	return !pathExists(s.Path(ctx))
}

// Install writes the shortcut for the package at pkgPath, overwriting any
// previous one.
func (s *Shortcuts) Install(ctx AgentContext, pkgPath string) (string, error) {
	if ctx.Kind != AgentClaude {
		return "", fmt.Errorf("command shortcuts are only supported for %s: %w",
			AgentClaude.DisplayName(), ErrInvalidState)
	}

	content, err := s.Render(ctx, pkgPath)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(ctx.BaseDir, commandsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ioError("creating", dir, err)
	}
	path := s.Path(ctx)
	if err := writeFileAtomic(path, content); err != nil {
		return "", ioError("writing", path, err)
	}
	return path, nil
}

// Render produces the shortcut text. The package is referenced relative to
// the project root, where the agent runs its commands.
func (s *Shortcuts) Render(ctx AgentContext, pkgPath string) ([]byte, error) {
	rel := pkgPath
	if ctx.ProjectRoot != "" {
		if r, err := filepath.Rel(ctx.ProjectRoot, pkgPath); err == nil {
			rel = r
		}
	}
	if s.goos != "windows" {
		rel = filepath.ToSlash(rel)
	}

	tmpl, err := template.ParseFS(shortcutTemplates, "templates/"+s.templateName())
	if err != nil {
		return nil, fmt.Errorf("loading shortcut template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Package string }{Package: rel}); err != nil {
		return nil, fmt.Errorf("rendering shortcut template: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Shortcuts) templateName() string {
	switch s.goos {
	case "darwin", "windows":
		return "skill-manager." + s.goos + ".md.tmpl"
	default:
		return "skill-manager.unix.md.tmpl"
	}
}
