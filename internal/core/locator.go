package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackageLocator finds the running application's installable package (the
// unit that relocation copies) and its ancestors.
type PackageLocator interface {
	// OwnPackage returns the absolute path of the running package.
	OwnPackage() (string, error)
	// PackageParent returns the directory levels above the package.
	// PackageParent(1) is the directory that contains it.
	PackageParent(levels int) (string, error)
}

// exeLocator derives the package from the running executable's path.
// With bundled set, an executable inside <Name>.app/Contents/MacOS resolves
// to the .app directory; otherwise the executable itself is the package.
type exeLocator struct {
	executable func() (string, error)
	bundled    bool
}

// NewExeLocator returns the PackageLocator for the current platform.
func NewExeLocator() PackageLocator {
	return &exeLocator{executable: os.Executable, bundled: bundleLayout}
}

func (l *exeLocator) OwnPackage() (string, error) {
	exe, err := l.executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	exe, err = filepath.Abs(exe)
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}

	if l.bundled {
		if app, ok := bundleRoot(exe); ok {
			return app, nil
		}
	}
	return exe, nil
}

func (l *exeLocator) PackageParent(levels int) (string, error) {
	if levels < 1 {
		return "", fmt.Errorf("package parent levels must be positive, got %d", levels)
	}
	dir, err := l.OwnPackage()
	if err != nil {
		return "", err
	}
	for range levels {
		dir = filepath.Dir(dir)
	}
	return dir, nil
}

// bundleRoot returns the .app directory for an executable laid out as
// <Name>.app/Contents/MacOS/<exe>. Binaries outside a bundle (for example
// during development) report false.
func bundleRoot(exe string) (string, bool) {
	macOS := filepath.Dir(exe)
	contents := filepath.Dir(macOS)
	app := filepath.Dir(contents)
	if filepath.Base(macOS) != "MacOS" || filepath.Base(contents) != "Contents" ||
		!strings.HasSuffix(filepath.Base(app), ".app") {
		return "", false
	}
	return app, true
}

// Locator resolves the agent context from where the package is installed.
type Locator struct {
	pkg PackageLocator
}

// NewLocator creates a Locator backed by the given PackageLocator.
func NewLocator(pkg PackageLocator) *Locator {
	return &Locator{pkg: pkg}
}

// Package returns the underlying PackageLocator.
func (l *Locator) Package() PackageLocator {
	return l.pkg
}

// Resolve reports the agent context of the directory containing the
// package. When that directory cannot be determined the kind is none.
func (l *Locator) Resolve() AgentContext {
	root, err := l.pkg.PackageParent(1)
	if err != nil {
		return AgentContext{Kind: AgentNone}
	}
	return ContextForRoot(root)
}

// IsInstalledInAgentTree reports whether the package sits in a known agent root.
func (l *Locator) IsInstalledInAgentTree() bool {
	return l.Resolve().InAgentTree()
}

// ContextForRoot classifies an agent root by its basename.
func ContextForRoot(root string) AgentContext {
	ctx := AgentContext{
		Kind:    AgentKindForDir(filepath.Base(root)),
		BaseDir: root,
	}
	if ctx.Kind != AgentNone {
		ctx.ProjectRoot = filepath.Dir(root)
	}
	return ctx
}

// AvailableAgents lists the agent kinds whose hidden root exists under
// projectRoot, claude before codex.
func AvailableAgents(projectRoot string) []AgentKind {
	var kinds []AgentKind
	if projectRoot == "" {
		return kinds
	}
	for _, kind := range KnownAgents {
		if dirExists(filepath.Join(projectRoot, kind.DirName())) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
