package redis

const (
	// KeyPrefixSettings is the prefix for settings hashes
	KeyPrefixSettings = "launchpad:settings:"
	// DefaultNamespace is used when no profile namespace is given
	DefaultNamespace = "default"
)

// SettingsKey returns the Redis hash key holding the settings of a profile namespace
func SettingsKey(namespace string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return KeyPrefixSettings + namespace
}
