// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a concurrent modification conflict.
var ErrConflict = errors.New("conflict: resource was modified by another request")

// ErrValidation indicates request input that fails validation.
var ErrValidation = errors.New("validation failed")

// ErrUnauthorized indicates a missing or invalid credential or verification token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated caller lacking the required capability.
var ErrForbidden = errors.New("forbidden")
