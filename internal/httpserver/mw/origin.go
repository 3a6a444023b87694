package mw

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
	"github.com/MrSnakeDoc/launchpad/internal/utils"
)

// RejectForeignOrigin refuses browser requests whose Origin header names a
// host outside allowedHosts. With an empty list the Origin host must equal
// the request Host. Requests without an Origin header (curl, the host
// application) pass through.
func RejectForeignOrigin(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		patterns = append(patterns, strings.ToLower(strings.Trim(h, "[]")))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if originAllowed(origin, r.Host, patterns) {
				next.ServeHTTP(w, r)
				return
			}
			log.Warn("request rejected by origin filter", logger.String("origin", origin))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func originAllowed(origin, reqHost string, patterns []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false // includes the opaque "null" origin
	}
	host := strings.ToLower(u.Hostname())
	if len(patterns) == 0 {
		return host == strings.ToLower(strings.Trim(utils.ParseHostNoPort(reqHost), "[]"))
	}
	for _, pattern := range patterns {
		if matchHost(host, pattern) {
			return true
		}
	}
	return false
}
