package domain

// SystemInfo is the static environment metadata recorded in a backup.
type SystemInfo struct {
	System    string `json:"system"`
	Release   string `json:"release"`
	Version   string `json:"version"`
	Machine   string `json:"machine"`
	Processor string `json:"processor"`
}

// BackupDocument is a point-in-time snapshot of saved URLs and, optionally,
// settings.
//
// When decoded, a nil URLs or Settings means the key was absent from the
// file; an empty but non-nil value means it was present and empty.
type BackupDocument struct {
	CreatedDate  string            `json:"created_date"`
	AddonVersion string            `json:"addon_version"`
	KodiVersion  string            `json:"kodi_version"`
	SystemInfo   SystemInfo        `json:"system_info"`
	URLs         []SavedURL        `json:"urls"`
	Settings     map[string]string `json:"settings,omitempty"`
}

// HasURLs reports whether the document carries a urls collection.
func (d BackupDocument) HasURLs() bool { return d.URLs != nil }

// HasSettings reports whether the document carries a settings map.
func (d BackupDocument) HasSettings() bool { return d.Settings != nil }

// BackupInfo summarises one backup file for listings.
type BackupInfo struct {
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	CreatedDate  string `json:"created_date"`
	AddonVersion string `json:"addon_version"`
	URLCount     int    `json:"url_count"`
	HasSettings  bool   `json:"has_settings"`
	FileSize     string `json:"file_size"`
}
