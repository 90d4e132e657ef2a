//go:build windows

package core

import "syscall"

// detachSysProcAttr returns SysProcAttr for Windows (no Setsid equivalent).
func detachSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}
}
