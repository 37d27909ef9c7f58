// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Listing represents a failed page fetch while aggregating a paginated
// remote listing. The whole collection aborts; no partial data is returned.
type Listing struct {
	base
}

// Error returns the error message for Listing.
func (l Listing) Error() string {
	return l.error()
}

// Unwrap returns the wrapped error, if any.
func (l Listing) Unwrap() error {
	return l.err
}

// NewListing creates a new Listing error with the provided message.
func NewListing(message string, err ...error) Listing {
	return Listing{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
