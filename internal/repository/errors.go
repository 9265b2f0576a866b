package repository

import "errors"

// Sentinel errors returned by repositories.  Handlers map these onto the
// response envelope with errors.Is.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrEmailExists = errors.New("email already exists")
	ErrNotOwner    = errors.New("property not owned by user")
)
