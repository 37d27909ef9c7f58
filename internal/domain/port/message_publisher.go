// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package port

import "context"

// MessagePublisher defines the interface for publishing membership events.
// This interface is implemented by the NATS messaging infrastructure to
// notify audit and indexing consumers after mutating batches.
type MessagePublisher interface {
	// Audit publishes a sync report for the audit trail
	Audit(ctx context.Context, subject string, message any) error

	// Index publishes a membership snapshot for search indexing
	Index(ctx context.Context, subject string, message any) error
}
