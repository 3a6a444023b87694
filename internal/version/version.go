package version

import (
	"runtime"
	"time"
)

var (
	Version   = "1.0.0"                         // ex: 1.0.0, recorded as addon_version
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

// SchemaVersion tags saved_urls.json.
const SchemaVersion = "1.0"
