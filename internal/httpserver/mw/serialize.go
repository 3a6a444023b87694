package mw

import (
	"net/http"
	"sync"
)

// Serialize runs one request at a time under lock. The same lock is held
// by the background jobs that write the profile files.
func Serialize(lock sync.Locker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lock.Lock()
			defer lock.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
