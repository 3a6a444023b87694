package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
)

type importBookmarksRequest struct {
	All       bool                      `json:"all"`
	Bookmarks []domain.ImportedBookmark `json:"bookmarks"`
}

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Sources.All(r.Context()))
	}
}

// ImportBookmarks saves the posted selection, or every readable bookmark
// when all is set.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importBookmarksRequest
		if err := decode(r, &req); err != nil {
			badBody(w, err)
			return
		}
		selection := req.Bookmarks
		if req.All {
			selection = d.Sources.All(r.Context())
		}
		if len(selection) == 0 {
			badRequest(w, "no bookmarks selected")
			return
		}
		writeJSON(w, http.StatusOK, d.Sources.Import(d.URLs, selection))
	}
}
