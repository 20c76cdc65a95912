package services

import "errors"

// Errors shared by the services and the HTTP error mapping.
var (
	// Submission could not be used: no messaging identity. Callers log and drop it.
	ErrMissingIdentity   = errors.New("submission has no messaging identity")
	ErrInvalidSubmission = errors.New("invalid submission")

	// No form configuration matched the requested form id, key or event source.
	ErrConfigNotFound = errors.New("form configuration not found")

	// Roster or response table could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// A concurrent submission linked the identity or the row first and the
	// identity still resolves to nothing.
	ErrLinkConflict = errors.New("roster link conflict")

	// Push delivery failed. Only ever logged.
	ErrTransportFailure = errors.New("notification transport failure")
)
