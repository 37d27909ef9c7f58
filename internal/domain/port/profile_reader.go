// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// ProfileReader defines the interface for institutional profile lookups.
type ProfileReader interface {
	// ProfileByUID resolves a profile for one identifier.
	// Returns NotFound when the service has no profile for the identifier.
	ProfileByUID(ctx context.Context, uid, community string) (*model.Profile, error)
}
