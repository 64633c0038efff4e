package catalog

import (
	"fmt"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// Common catalog errors.
var (
	// ErrUnknownCollectionType is returned when a dataset descriptor carries a
	// type string this client does not recognize.
	ErrUnknownCollectionType = fmt.Errorf("unknown collection type")

	// ErrNoCollectionTypes is returned when a dataset descriptor carries no
	// type tags at all.
	ErrNoCollectionTypes = fmt.Errorf("collection descriptor has no types")
)

// Wrap wraps an error with additional context specific to the catalog package.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, "catalog: "+msg)
}

// Wrapf wraps an error with additional formatted context specific to the catalog package.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, "catalog: "+format, args...)
}
