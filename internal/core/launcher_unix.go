//go:build !windows

package core

import "syscall"

// detachSysProcAttr starts the child in a new session so it outlives the
// parent and its controlling terminal.
func detachSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setsid: true,
	}
}
