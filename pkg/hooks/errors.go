package hooks

import "fmt"

// ErrEventEmpty is returned when a hook is registered without an event.
var ErrEventEmpty = fmt.Errorf("hook event cannot be empty")

// ErrUnsupportedEvent is returned for an event name outside the supported set.
func ErrUnsupportedEvent(event string) error {
	return fmt.Errorf("unsupported hook event: %s", event)
}
