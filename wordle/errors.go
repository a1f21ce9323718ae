package wordle

import "errors"

var (
	// ErrParse reports malformed user input: command arguments, dates, thread references.
	ErrParse = errors.New("parse error")
	// ErrThreadNotFound is returned when neither the active nor the archived listing has the thread.
	ErrThreadNotFound = errors.New("thread not found")
	// ErrChannelNotFound is returned when the parent channel of an invocation cannot be resolved.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrNotAuthorized is returned for a delete requested by a non-admin.
	ErrNotAuthorized = errors.New("not authorized")
)
