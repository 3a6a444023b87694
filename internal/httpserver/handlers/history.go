package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
)

func RecentHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.History.Recent(intQuery(r, "limit", 20)))
	}
}

func TopHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.History.MostVisited(intQuery(r, "limit", 10)))
	}
}

func SearchHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			badRequest(w, "missing query parameter q")
			return
		}
		writeJSON(w, http.StatusOK, d.History.Search(q))
	}
}

func HistoryStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.History.Stats())
	}
}

// DeleteHistory removes the entry given by the url query parameter, or the
// whole history when it is absent.
func DeleteHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		if url := r.URL.Query().Get("url"); url != "" {
			err = d.History.Remove(url)
		} else {
			err = d.History.Clear()
		}
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
