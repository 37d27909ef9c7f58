// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// MembershipSyncWriter exposes the membership reconciliation operations.
type MembershipSyncWriter interface {
	// Copy adds the source's identifiers to the destination, skipping ones
	// already present, then prunes duplicate records
	Copy(ctx context.Context, src Source, dst RosterWriter) (*model.SyncReport, error)

	// Remove deletes the given identifiers from the destination. Identifiers
	// that are not current members are dropped without any remote call.
	Remove(ctx context.Context, identifiers []string, dst RosterWriter) (*model.SyncReport, error)

	// Sync makes the destination's membership equal to the source's set:
	// stale members are removed first, then missing ones added, then
	// duplicate records pruned
	Sync(ctx context.Context, src Source, dst RosterWriter) (*model.SyncReport, error)

	// Transfer copies the identifiers to every destination and then removes
	// them from every source roster
	Transfer(ctx context.Context, identifiers []string, sources []RosterWriter, destinations []RosterWriter) error

	// RemoveDuplicates deletes all but the first record per identifier and
	// returns the number of records deleted. Running it twice is a no-op the
	// second time.
	RemoveDuplicates(ctx context.Context, dst RosterWriter) (int, error)
}
