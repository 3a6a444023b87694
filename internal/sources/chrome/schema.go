package chrome

// File is the root of a Chrome-family Bookmarks JSON file.
type File struct {
	Roots map[string]*Node `json:"roots"`
}

// Node is either a folder or a url. Only the fields used for import are decoded.
type Node struct {
	Type     string  `json:"type"` // "folder" | "url"
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	Children []*Node `json:"children"`
}

const (
	nodeFolder = "folder"
	nodeURL    = "url"
)

// importedRoots are walked in this order; "synced" is ignored.
var importedRoots = []string{"bookmark_bar", "other"}
