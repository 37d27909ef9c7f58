// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// Source produces the canonical identifier set for a sync operation.
// A raw identifier list, a contacts roster, and an access-group roster are
// all sources; the orchestrator never cares which.
type Source interface {
	// Identifiers returns the flat identifier set of the source
	Identifiers(ctx context.Context) (model.IdentifierSet, error)
}
