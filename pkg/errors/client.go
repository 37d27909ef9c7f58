// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents invalid caller input, detected before any remote
// call is made (bad source shape, unknown service, unresolvable list name).
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the wrapped error, if any.
func (v Validation) Unwrap() error {
	return v.err
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a missing remote resource (unknown list name, contact
// or member not present on delete).
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (n NotFound) Error() string {
	return n.error()
}

// Unwrap returns the wrapped error, if any.
func (n NotFound) Unwrap() error {
	return n.err
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Conflict represents a resource that already exists remotely (member added
// twice). Batch loops treat it as informational, not fatal.
type Conflict struct {
	base
}

// Error returns the error message for Conflict.
func (c Conflict) Error() string {
	return c.error()
}

// Unwrap returns the wrapped error, if any.
func (c Conflict) Unwrap() error {
	return c.err
}

// NewConflict creates a new Conflict error with the provided message.
func NewConflict(message string, err ...error) Conflict {
	return Conflict{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Unauthorized represents a permission-denied response from a remote
// service. It aborts a whole batch immediately.
type Unauthorized struct {
	base
}

// Error returns the error message for Unauthorized.
func (u Unauthorized) Error() string {
	return u.error()
}

// Unwrap returns the wrapped error, if any.
func (u Unauthorized) Unwrap() error {
	return u.err
}

// NewUnauthorized creates a new Unauthorized error with the provided message.
func NewUnauthorized(message string, err ...error) Unauthorized {
	return Unauthorized{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
