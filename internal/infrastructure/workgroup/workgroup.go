// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package workgroup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// Workgroup is an access-group roster backed by one workgroup. Membership is
// keyed directly by institutional id, so the record key equals the identifier
// and duplicates cannot occur.
type Workgroup struct {
	client *Client
	stem   string
	name   string

	records []model.MemberRecord
	loaded  bool
}

// newWorkgroup wraps a workgroup as a roster
func newWorkgroup(client *Client, stem, name string) *Workgroup {
	return &Workgroup{
		client: client,
		stem:   stem,
		name:   name,
	}
}

// Kind returns the access-group destination kind
func (g *Workgroup) Kind() model.DestinationKind {
	return model.DestinationAccessGroup
}

// Name returns the workgroup name without its stem
func (g *Workgroup) Name() string {
	return g.name
}

// Members returns the cached member records, fetching them on first use
func (g *Workgroup) Members(ctx context.Context) ([]model.MemberRecord, error) {
	if !g.loaded {
		if err := g.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return g.records, nil
}

// Refresh discards the cached members and fetches the current workgroup
func (g *Workgroup) Refresh(ctx context.Context) error {
	group, err := g.client.Fetch(ctx, g.stem, g.name)
	if err != nil {
		return err
	}

	records := make([]model.MemberRecord, 0, len(group.Members))
	for _, member := range group.Members {
		records = append(records, model.MemberRecord{
			Identifier: member.ID,
			RecordKey:  member.ID,
		})
	}
	g.records = records
	g.loaded = true

	slog.DebugContext(ctx, "refreshed workgroup members",
		"workgroup", qualify(g.stem, g.name),
		"members", len(records),
	)
	return nil
}

// AddMember adds a user to the workgroup
func (g *Workgroup) AddMember(ctx context.Context, identifier string) error {
	if identifier == "" {
		return errs.NewValidation("identifier is required")
	}

	if err := g.client.AddMember(ctx, g.stem, g.name, identifier); err != nil {
		return err
	}

	slog.InfoContext(ctx, "added member to workgroup",
		"workgroup", qualify(g.stem, g.name),
		"identifier", identifier,
	)
	return nil
}

// RemoveMember removes a user from the workgroup
func (g *Workgroup) RemoveMember(ctx context.Context, identifier string) error {
	if identifier == "" {
		return errs.NewValidation("identifier is required")
	}

	if err := g.client.RemoveMember(ctx, g.stem, g.name, identifier); err != nil {
		return err
	}

	slog.InfoContext(ctx, "removed member from workgroup",
		"workgroup", qualify(g.stem, g.name),
		"identifier", identifier,
	)
	return nil
}

// DeleteRecord removes the record keyed by the identifier itself
func (g *Workgroup) DeleteRecord(ctx context.Context, recordKey string) error {
	return g.RemoveMember(ctx, recordKey)
}

// Service resolves workgroup names into rosters
type Service struct {
	client *Client
}

// NewService creates a workgroup roster resolver over the client
func NewService(client *Client) (*Service, error) {
	if client == nil {
		return nil, errs.NewValidation("workgroup client is required")
	}
	return &Service{client: client}, nil
}

// Search lists the workgroup names under a stem
func (s *Service) Search(ctx context.Context, stem string) ([]string, error) {
	return s.client.Search(ctx, stem)
}

// ResolveRoster resolves a workgroup under the stem, verifying it exists
func (s *Service) ResolveRoster(ctx context.Context, stem, name string) (port.RosterWriter, error) {
	if stem == "" || name == "" {
		return nil, errs.NewValidation("workgroup stem and name are required")
	}

	group := newWorkgroup(s.client, stem, name)
	if err := group.Refresh(ctx); err != nil {
		if errors.As(err, &errs.NotFound{}) {
			return nil, errs.NewNotFound(fmt.Sprintf("no workgroup named %q", qualify(stem, name)), err)
		}
		return nil, err
	}
	return group, nil
}
