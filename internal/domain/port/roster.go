// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// Roster is a readable membership destination. Implementations cache the
// membership collection after the first fetch; staleness is managed only
// through explicit Refresh calls, never implicitly.
type Roster interface {
	// Kind returns the destination variant tag
	Kind() model.DestinationKind

	// Name returns the destination's list or group name
	Name() string

	// Members returns the cached membership collection, fetching it on first
	// use by exhausting all pages of the remote listing
	Members(ctx context.Context) ([]model.MemberRecord, error)

	// Refresh discards the cached collection and refetches it
	Refresh(ctx context.Context) error
}

// RosterWriter is a destination that supports membership mutation.
// Mutations are single-record remote calls; callers drive batches and
// refresh the roster afterwards.
type RosterWriter interface {
	Roster

	// AddMember adds one identifier to the destination.
	// Returns Conflict when the identifier is already a member.
	AddMember(ctx context.Context, identifier string) error

	// RemoveMember removes one identifier from the destination.
	// Returns NotFound when the identifier is not a member.
	RemoveMember(ctx context.Context, identifier string) error

	// DeleteRecord deletes one record by its opaque record key.
	// Used by duplicate pruning, which must target a specific record rather
	// than all records sharing an identifier.
	DeleteRecord(ctx context.Context, recordKey string) error
}
