package domain

import "errors"

var (
	// ErrNotFound is returned when an id, url or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a saved URL name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidURL is returned when a URL fails validation.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidBackup is returned for backup files holding neither urls nor settings.
	ErrInvalidBackup = errors.New("invalid backup file")

	// ErrNoBrowsers is returned when no browser could be detected.
	ErrNoBrowsers = errors.New("no browsers detected")

	// ErrSourceUnavailable is returned when a bookmark store is missing on this machine.
	ErrSourceUnavailable = errors.New("bookmark source unavailable")

	// ErrLaunchFailed wraps process spawn failures.
	ErrLaunchFailed = errors.New("failed to launch browser")
)
