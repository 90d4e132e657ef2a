package core

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Launcher starts a staged package as a new, independent process.
type Launcher interface {
	// Launch starts the package at path and returns a process id, or 0 when
	// the platform hands the launch off to another service.
	Launch(path string) (int, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(path string) (int, error)

func (f LauncherFunc) Launch(path string) (int, error) { return f(path) }

// execLauncher launches packages with os/exec.
type execLauncher struct {
	// openCommand hands .app bundles to the desktop ("open" on macOS).
	openCommand string
	args        []string
}

// NewExecLauncher returns the Launcher for the current platform.
func NewExecLauncher() Launcher {
	return &execLauncher{openCommand: "open"}
}

func (l *execLauncher) Launch(path string) (int, error) {
	if strings.HasSuffix(path, ".app") {
		// -n opens a new instance even when one is already running.
		out, err := exec.Command(l.openCommand, "-n", path).CombinedOutput()
		if err != nil {
			msg := strings.TrimSpace(string(out))
			if msg != "" {
				err = fmt.Errorf("%w: %s", err, msg)
			}
			return 0, err
		}
		return 0, nil
	}

	cmd := exec.Command(path, l.args...)
	cmd.Dir = filepath.Dir(path)
	cmd.SysProcAttr = detachSysProcAttr()
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// The child is not waited on; it must outlive this process.
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("releasing process %d: %w", pid, err)
	}
	return pid, nil
}
