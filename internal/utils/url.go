package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
)

var knownSchemes = []string{"http://", "https://", "ftp://", "file://"}

// host (domain, localhost or IPv4), optional port, optional path
var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,63}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// EnsureScheme prefixes raw with http:// unless it already carries a known scheme.
func EnsureScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	for _, s := range knownSchemes {
		if strings.HasPrefix(lower, s) {
			return raw
		}
	}
	return "http://" + raw
}

// ValidateURL normalises raw with EnsureScheme and checks that it is a
// plausible http(s) URL. It returns the normalised form.
func ValidateURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty", domain.ErrInvalidURL)
	}
	normalized := EnsureScheme(raw)
	if !urlPattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidURL, raw)
	}
	return normalized, nil
}
