// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
)

// StaticSource adapts a raw identifier list into a sync source.
type StaticSource []string

// Identifiers returns the list as a set, dropping duplicates and empties.
func (s StaticSource) Identifiers(_ context.Context) (model.IdentifierSet, error) {
	return model.NewIdentifierSet(s...), nil
}

// rosterSource adapts a membership destination into a sync source by
// extracting the identifier set from its records.
type rosterSource struct {
	roster port.Roster
}

// NewRosterSource wraps a roster so it can feed a sync operation.
func NewRosterSource(roster port.Roster) port.Source {
	return &rosterSource{roster: roster}
}

// Identifiers returns the flat identifier set of the roster's records.
// Records without an identifier are skipped: a contacts collection with no
// external reference column yields an empty set rather than an error. That
// leniency can mask a schema mismatch, so a skip count is logged.
func (r *rosterSource) Identifiers(ctx context.Context) (model.IdentifierSet, error) {
	records, err := r.roster.Members(ctx)
	if err != nil {
		return nil, err
	}

	set, skipped := model.IdentifiersOf(records)
	if skipped > 0 {
		slog.WarnContext(ctx, "source records without identifiers were skipped",
			"source", r.roster.Name(),
			"skipped", skipped,
			"total", len(records),
		)
	}
	return set, nil
}
