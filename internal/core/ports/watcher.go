package ports

// DirWatcher watches loader configuration files inside cached directories
// and reports the directory keys whose configuration changed.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type DirWatcher interface {
	// Add starts watching the loader configuration inside the directory key.
	Add(key string) error

	// Events returns the channel of directory keys whose configuration
	// changed. The channel is closed when the watcher stops.
	Events() <-chan string

	// Close stops the watcher and releases all resources.
	Close() error
}
