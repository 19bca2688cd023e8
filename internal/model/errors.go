package model

import "errors"

// Error kinds. Packages wrap these with %w so callers can classify failures
// with errors.Is.
var (
	// ErrConfig covers a missing or malformed catalog file and missing secrets.
	ErrConfig = errors.New("configuration error")
	// ErrTransport covers network and HTTP failures against external services.
	ErrTransport = errors.New("transport error")
	// ErrInvalidDate is returned for calendar dates that do not exist.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInput covers non-numeric or out-of-range interactive input.
	ErrInput = errors.New("invalid input")
	// ErrPartialFailure marks a fill run in which at least one time entry
	// was not created.
	ErrPartialFailure = errors.New("one or more time entries were not created")
)
