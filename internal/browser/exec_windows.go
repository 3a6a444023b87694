//go:build windows

package browser

import "os"

// Windows has no execute bit; any regular file counts.
func isExecutable(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
