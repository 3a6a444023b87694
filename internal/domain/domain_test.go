package domain

import "testing"

func TestSavedURLMatches(t *testing.T) {
	u := SavedURL{Name: "Docs", URL: "https://example.com/docs", Description: "Project handbook"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "name case-insensitive", query: "DOC", want: true},
		{name: "url", query: "example.com", want: true},
		{name: "description", query: "handbook", want: true},
		{name: "no match", query: "wiki", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := u.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSavedURLSameName(t *testing.T) {
	u := SavedURL{Name: "Docs"}
	if !u.SameName("docs") {
		t.Error("SameName should ignore case")
	}
	if u.SameName("docs2") {
		t.Error("SameName matched a different name")
	}
}

func TestHistoryEntryMatches(t *testing.T) {
	h := HistoryEntry{URL: "https://go.dev", Title: "The Go Programming Language"}
	if !h.Matches("PROGRAMMING") {
		t.Error("expected title match")
	}
	if !h.Matches("go.dev") {
		t.Error("expected url match")
	}
	if h.Matches("rust") {
		t.Error("unexpected match")
	}
}

func TestImportedBookmarkDisplayName(t *testing.T) {
	b := ImportedBookmark{Name: "Go", URL: "https://go.dev", Source: "Chrome"}
	if got := b.DisplayName(); got != "Go (Chrome)" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestBackupDocumentPresence(t *testing.T) {
	var empty BackupDocument
	if empty.HasURLs() || empty.HasSettings() {
		t.Error("zero document should report no urls and no settings")
	}
	doc := BackupDocument{URLs: []SavedURL{}, Settings: map[string]string{}}
	if !doc.HasURLs() || !doc.HasSettings() {
		t.Error("empty but present collections should be reported")
	}
}
