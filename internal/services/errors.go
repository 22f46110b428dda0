package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// the four response categories: validation, authorization, not-found and
// uniqueness conflict.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrDuplicateEmployeeID = errors.New("employee ID already exists")
	ErrInvalidStatus       = errors.New("invalid status")

	// ErrAmbiguousRole marks an account that is staff and also owns an
	// employee profile. Such an account satisfies neither role predicate,
	// so both login entry points refuse it.
	ErrAmbiguousRole = errors.New("account is both staff and employee")
)
