//go:build windows

package browser

import (
	"testing"

	"golang.org/x/sys/windows"
)

func TestDetachedCommandPassesURLVerbatim(t *testing.T) {
	exe := `C:\Program Files\Mozilla Firefox\firefox.exe`
	url := "https://example.com/search?q=a&b=c|d^e"

	cmd := detachedCommand(exe, []string{"--new-window", url})

	want := []string{exe, "--new-window", url}
	if len(cmd.Args) != len(want) {
		t.Fatalf("Args = %q, want %q", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
	if cmd.SysProcAttr == nil || cmd.SysProcAttr.CreationFlags&windows.DETACHED_PROCESS == 0 {
		t.Errorf("SysProcAttr = %+v, want DETACHED_PROCESS", cmd.SysProcAttr)
	}
}
