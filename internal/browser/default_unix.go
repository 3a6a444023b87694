//go:build !windows

package browser

import (
	"context"
	"os/exec"
	"strings"
)

func defaultBrowserID(ctx context.Context, goos string) (string, error) {
	if goos != "linux" {
		return "", nil
	}
	out, err := exec.CommandContext(ctx, "xdg-settings", "get", "default-web-browser").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
