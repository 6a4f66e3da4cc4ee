package domain

import "go.trai.ch/zerr"

var (
	// ErrDirectoryNotFound is returned when a bind target does not exist.
	ErrDirectoryNotFound = zerr.New("directory not found")

	// ErrNotADirectory is returned when a bind target is not a directory.
	ErrNotADirectory = zerr.New("not a directory")

	// ErrContextNotFound is returned when an operation references an unbound context.
	ErrContextNotFound = zerr.New("context not bound")

	// ErrConfigReadFailed is returned when the denv config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the denv config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrExecFailed is returned when a command run under a directory environment fails.
	ErrExecFailed = zerr.New("command execution failed")

	// ErrNoCommand is returned when exec is invoked without a command.
	ErrNoCommand = zerr.New("no command specified")

	// ErrUnknownFormat is returned when an export format is not recognized.
	ErrUnknownFormat = zerr.New("unknown export format, expected 'shell' or 'json'")

	// ErrWatcherClosed is returned when events are requested from a stopped watcher.
	ErrWatcherClosed = zerr.New("watcher closed")
)
