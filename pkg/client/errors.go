package client

import (
	"fmt"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// Common client errors.
var (
	// ErrNotFound is returned when the API reports that an entity does not exist.
	// This is an expected outcome for archive lookups, not a transient fault.
	ErrNotFound = fmt.Errorf("entity not found")

	// ErrUnexpectedStatus is returned for any non-2xx status other than 404.
	ErrUnexpectedStatus = fmt.Errorf("unexpected status code")

	// ErrAPIURLInvalid is returned when the configured API root URL cannot be parsed.
	ErrAPIURLInvalid = fmt.Errorf("API URL is invalid")
)

// Wrap wraps an error with additional context specific to the client package.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, "client: "+msg)
}

// Wrapf wraps an error with additional formatted context specific to the client package.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, "client: "+format, args...)
}
