package domain

import "errors"

// Domain errors returned by the core and its repository implementations.

var (
	// ErrNotFound indicates the requested task does not exist for the owner.
	ErrNotFound = errors.New("task not found")

	// ErrNotAuthorized indicates no authenticated owner is bound.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrTextRequired indicates the task text was empty after trimming.
	ErrTextRequired = errors.New("task text is required")

	// ErrStartTimeRequired indicates the task start time was missing.
	ErrStartTimeRequired = errors.New("task start time is required")

	// ErrInvalidStatusFilter indicates an unknown status filter value.
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	// ErrEmailTaken indicates a sign-up attempt with an existing email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMalformedSnapshot indicates an import payload that failed to parse.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrInvalidSessionToken indicates a session token that failed to parse
	// or verify.
	ErrInvalidSessionToken = errors.New("invalid session token")
)
