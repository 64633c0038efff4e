package stac

import "fmt"

// Common record parsing errors.
var (
	// ErrRecordInvalid is returned when a record payload is malformed.
	ErrRecordInvalid = fmt.Errorf("invalid STAC record")

	// ErrMissingField is returned when a required record field is absent.
	ErrMissingField = fmt.Errorf("missing required field")

	// ErrVersionUnsupported is returned when a record declares a stac_version
	// older than the minimum this client understands.
	ErrVersionUnsupported = fmt.Errorf("unsupported STAC version")
)
