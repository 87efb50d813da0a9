package catalog

import "errors"

// Sentinel errors for the catalog's error taxonomy. Callers MUST use
// errors.Is/errors.As to classify a failure rather than matching on
// message text — the suggestion text appended by the resolver to
// ErrNotFound varies per lookup.
var (
	// ErrNotFound is returned when a requested entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned by Create when a conflicting entry
	// exists and OnConflict does not resolve the conflict.
	ErrAlreadyExists = errors.New("already exists")

	// ErrTypeMismatch is returned when a name is found under a
	// different entry kind than requested.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrHasDependents is returned when a drop is blocked by existing
	// dependents and cascade was not requested.
	ErrHasDependents = errors.New("has dependents")

	// ErrPermissionDenied is returned on any write attempt against the
	// system catalog, or against another protected entry.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSerializationFailure is returned when two concurrent writers
	// collide on the same name and this call lost the race.
	ErrSerializationFailure = errors.New("serialization failure")

	// ErrCancelled is returned when the session context was cancelled
	// before an operation's side effects committed.
	ErrCancelled = errors.New("cancelled")

	// ErrInvalidArgument is returned for malformed identifiers or an
	// empty list where a non-empty one is required.
	ErrInvalidArgument = errors.New("invalid argument")
)
