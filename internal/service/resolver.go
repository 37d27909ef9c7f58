// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	"github.com/stanford-rc/identity-sync-service/pkg/constants"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// ContactsRosterResolver resolves a mailing list name within a contacts
// directory. Implemented by the Qualtrics infrastructure.
type ContactsRosterResolver interface {
	ResolveRoster(ctx context.Context, name string) (port.RosterWriter, error)
}

// GroupRosterResolver resolves a workgroup name under a stem. Implemented
// by the workgroup infrastructure.
type GroupRosterResolver interface {
	ResolveRoster(ctx context.Context, stem, name string) (port.RosterWriter, error)
}

// destinationResolver implements port.DestinationResolver over the two
// supported destination services. Resolution always happens before any
// mutation so bad references fail fast.
type destinationResolver struct {
	contacts ContactsRosterResolver
	groups   GroupRosterResolver
	stem     string
}

// NewDestinationResolver creates a resolver. Either service may be nil when
// not configured; resolving against it then fails with a Validation error.
func NewDestinationResolver(contacts ContactsRosterResolver, groups GroupRosterResolver, stem string) port.DestinationResolver {
	return &destinationResolver{
		contacts: contacts,
		groups:   groups,
		stem:     stem,
	}
}

// Resolve returns a live destination handle for the named list.
func (r *destinationResolver) Resolve(ctx context.Context, service, listName string) (port.RosterWriter, error) {
	if listName == "" {
		return nil, errs.NewValidation("list name is required")
	}

	slog.DebugContext(ctx, "resolving destination",
		"service", service,
		"list_name", listName,
	)

	switch service {
	case constants.ServiceQualtrics:
		if r.contacts == nil {
			return nil, errs.NewValidation("qualtrics service is not configured")
		}
		return r.contacts.ResolveRoster(ctx, listName)

	case constants.ServiceWorkgroup:
		if r.groups == nil {
			return nil, errs.NewValidation("workgroup service is not configured")
		}
		if r.stem == "" {
			return nil, errs.NewValidation("workgroup stem is required")
		}
		return r.groups.ResolveRoster(ctx, r.stem, listName)

	default:
		return nil, errs.NewValidation(fmt.Sprintf("unknown service name: %q", service))
	}
}
