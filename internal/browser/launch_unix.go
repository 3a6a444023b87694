//go:build unix

package browser

import (
	"os/exec"
	"syscall"
)

func detachedCommand(exe string, argv []string) *exec.Cmd {
	cmd := exec.Command(exe, argv...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd
}
