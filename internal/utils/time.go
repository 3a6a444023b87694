package utils

import (
	"strings"
	"time"
)

const (
	// ISOLayout is the fixed-width timestamp layout stored in every JSON file.
	ISOLayout = "2006-01-02T15:04:05.000000"
	// HistoryDateLayout is the human readable date stored in history entries.
	HistoryDateLayout = "2006-01-02 15:04:05"
	// DisplayLayout is used when showing dates to the user.
	DisplayLayout = "02/01/2006 15:04"
)

// accepted by ParseISO, tried in order
var isoLayouts = []string{
	ISOLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// NowISO formats t with ISOLayout.
func NowISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// HistoryDate formats t with HistoryDateLayout.
func HistoryDate(t time.Time) string {
	return t.Format(HistoryDateLayout)
}

// ParseISO parses the timestamps written by NowISO as well as the
// variable-precision forms found in older or hand-edited files.
func ParseISO(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDateTime renders an ISO timestamp for display. Unparsable input is
// returned unchanged, empty input becomes "N/A".
func FormatDateTime(iso string) string {
	t, err := ParseISO(iso)
	if err != nil {
		if iso == "" {
			return "N/A"
		}
		return iso
	}
	return t.Format(DisplayLayout)
}

// BackupTimestamp makes an ISO timestamp safe for use in a filename.
func BackupTimestamp(iso string) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}
