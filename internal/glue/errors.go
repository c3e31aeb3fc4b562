package glue

import "errors"

var (
	// ErrPipe is returned by New when the command pipe cannot be created.
	ErrPipe = errors.New("glue: could not create command pipe")

	// ErrDestroyed is returned by setters once the worker has torn down.
	ErrDestroyed = errors.New("glue: app destroyed")

	// ErrInvalidState is returned when SetActivityState or Post receive a
	// command they do not accept.
	ErrInvalidState = errors.New("glue: invalid command for this call")

	// ErrAssetNotFound is returned by asset sources for missing files.
	ErrAssetNotFound = errors.New("glue: asset not found")
)
