package download

import "fmt"

// ErrInvalidMode is returned when a mode name cannot be parsed.
var ErrInvalidMode = fmt.Errorf("invalid download mode")

// ErrUnknownMode wraps ErrInvalidMode with the offending mode name.
func ErrUnknownMode(mode string) error {
	return fmt.Errorf("%q: %w", mode, ErrInvalidMode)
}
