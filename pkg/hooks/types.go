// Package hooks runs user-supplied Tengo scripts around archive downloads.
package hooks

// Event names a point in the download lifecycle a script can attach to.
type Event string

// Supported hook events.
const (
	PreDownload  Event = "pre-download"
	PostDownload Event = "post-download"
	PostExtract  Event = "post-extract"
)

// Hook pairs an event with the script that runs when it fires.
type Hook struct {
	Event   Event
	Content string
}

// Context carries the variables exposed to a hook script.
type Context struct {
	DatasetID    string
	CollectionID string
	ArchivePath  string
	DestDir      string
	Vars         map[string]interface{}
}

// Manager registers hook scripts and executes them on their events.
type Manager interface {
	// Execute runs the script registered for the event, if any.
	Execute(event Event, ctx Context) error

	// AddHook registers or replaces the script for a hook's event.
	AddHook(hook Hook) error

	// RemoveHook unregisters the script for the event.
	RemoveHook(event Event) error

	// HasHook reports whether a script is registered for the event.
	HasHook(event Event) bool
}
