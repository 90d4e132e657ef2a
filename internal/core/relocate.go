package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/barysiuk/skillmgr/internal/logger"
)

// Relocator copies the running package into another agent root and starts
// the copy. It never terminates the current process and never rolls back a
// staged copy; the caller decides whether to quit after a launch.
type Relocator struct {
	locator  *Locator
	launcher Launcher
}

// NewRelocator creates a Relocator.
func NewRelocator(locator *Locator, launcher Launcher) *Relocator {
	return &Relocator{locator: locator, launcher: launcher}
}

// Stage copies the running package into destRoot and returns the path of
// the copy. A previous copy with the same name is replaced.
func (r *Relocator) Stage(destRoot string) (string, error) {
	pkg, err := r.locator.Package().OwnPackage()
	if err != nil {
		return "", fmt.Errorf("locating own package: %w: %w", ErrConfiguration, err)
	}

	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return "", ioError("creating", destRoot, err)
	}
	if resolved, err := filepath.EvalSymlinks(destRoot); err == nil {
		destRoot = resolved
	}

	staged := filepath.Join(destRoot, filepath.Base(pkg))
	if staged == pkg {
		return "", fmt.Errorf("package is already installed at %s: %w", staged, ErrInvalidState)
	}

	if pathExists(staged) {
		if err := os.RemoveAll(staged); err != nil {
			return "", ioError("removing previous copy", staged, err)
		}
	}

	info, err := os.Lstat(pkg)
	if err != nil {
		return "", ioError("reading", pkg, err)
	}
	if info.IsDir() {
		err = copyTree(pkg, staged)
	} else {
		err = copyFile(pkg, staged)
	}
	if err != nil {
		return "", ioError("copying package to", staged, err)
	}

	logger.For("relocate").WithField("from", pkg).WithField("to", staged).Info("package staged")
	return staged, nil
}

// Launch starts a staged package.
func (r *Relocator) Launch(staged string) (int, error) {
	pid, err := r.launcher.Launch(staged)
	if err != nil {
		return 0, launchError(staged, err)
	}
	logger.For("relocate").WithField("path", staged).WithField("pid", pid).Info("package launched")
	return pid, nil
}

// InstallInto stages the package into targetProject/.claude and launches it.
func (r *Relocator) InstallInto(targetProject string) (string, error) {
	if targetProject == "" {
		return "", fmt.Errorf("%w: target project is empty", ErrInvalidName)
	}
	abs, err := filepath.Abs(expandPath(targetProject))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", targetProject, err)
	}

	staged, err := r.Stage(filepath.Join(abs, AgentClaude.DirName()))
	if err != nil {
		return "", err
	}
	if _, err := r.Launch(staged); err != nil {
		return staged, err
	}
	return staged, nil
}

// SwitchAgentType stages the package into the sibling agent root of the
// current project and launches it. Switching to the current kind does
// nothing and returns an empty path.
func (r *Relocator) SwitchAgentType(target AgentKind) (string, error) {
	if target.DirName() == "" {
		return "", fmt.Errorf("cannot switch to agent %q: %w", target, ErrInvalidState)
	}
	ctx := r.locator.Resolve()
	if ctx.Kind == target {
		return "", nil
	}
	if !ctx.InAgentTree() {
		return "", fmt.Errorf("switching agents requires running from an agent tree: %w", ErrInvalidState)
	}

	staged, err := r.Stage(filepath.Join(ctx.ProjectRoot, target.DirName()))
	if err != nil {
		return "", err
	}
	if _, err := r.Launch(staged); err != nil {
		return staged, err
	}
	return staged, nil
}
