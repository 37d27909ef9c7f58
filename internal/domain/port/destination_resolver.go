// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package port

import "context"

// DestinationResolver resolves a (service name, list name) pair into a live
// destination handle. Resolution fails loudly: an unknown service name is a
// Validation error and a list name absent from the service's enumerable
// names is NotFound, both raised before any mutation is attempted.
type DestinationResolver interface {
	Resolve(ctx context.Context, service, listName string) (RosterWriter, error)
}
