package utils

import (
	"os"
	"regexp"

	"github.com/dustin/go-humanize"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// FormatFileSize renders a byte count with binary units.
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(size))
}

// FileSize returns the size of path, 0 when it cannot be stat'ed.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// SanitizeFilename replaces characters that are invalid in filenames with '_'.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
