//go:build !unix && !windows

package browser

import "os/exec"

func detachedCommand(exe string, argv []string) *exec.Cmd {
	return exec.Command(exe, argv...)
}
