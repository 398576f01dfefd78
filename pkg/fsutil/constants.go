// Package fsutil holds file permission constants and small filesystem helpers.
package fsutil

// File and directory permission constants.
const (
	// FileModeDefault is used for files that hold nothing sensitive.
	FileModeDefault = 0o644 // -rw-r--r--
	// FileModeSecure is used for files that may hold credentials.
	FileModeSecure = 0o640 // -rw-r-----

	// DirModeDefault is used for created directories.
	DirModeDefault = 0o755 // drwxr-xr-x
)
