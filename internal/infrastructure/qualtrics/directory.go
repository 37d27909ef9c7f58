// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-querystring/query"

	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// Directory exposes the mailing lists of one XM Directory
type Directory struct {
	client      *Client
	directoryID string
}

// NewDirectory creates a directory handle over the configured XM Directory
func NewDirectory(client *Client) (*Directory, error) {
	if client == nil {
		return nil, errs.NewValidation("qualtrics client is required")
	}
	if client.config.DirectoryID == "" {
		return nil, errs.NewValidation("qualtrics directory id is required")
	}
	return &Directory{
		client:      client,
		directoryID: client.config.DirectoryID,
	}, nil
}

// baseURL returns the directory root of the v3 API
func (d *Directory) baseURL() string {
	return fmt.Sprintf("%s/API/v3/directories/%s", d.client.config.APIBaseURL(), d.directoryID)
}

// MailingLists collects every mailing list in the directory, walking all pages
func (d *Directory) MailingLists(ctx context.Context) ([]MailingListObject, error) {
	params, err := query.Values(listOptions{
		PageSize:     d.client.config.PageSize,
		IncludeCount: true,
	})
	if err != nil {
		return nil, errs.NewUnexpected("failed to encode listing options", err)
	}

	firstPage := d.baseURL() + "/mailinglists?" + params.Encode()
	lists, err := CollectPages[MailingListObject](ctx, d.client, firstPage)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "collected directory mailing lists",
		"directory_id", d.directoryID,
		"count", len(lists),
	)
	return lists, nil
}

// ListNames returns the names of every mailing list in the directory
func (d *Directory) ListNames(ctx context.Context) ([]string, error) {
	lists, err := d.MailingLists(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(lists))
	for _, list := range lists {
		names = append(names, list.Name)
	}
	return names, nil
}

// MailingListByName finds a mailing list by its display name
func (d *Directory) MailingListByName(ctx context.Context, name string) (*MailingListObject, error) {
	lists, err := d.MailingLists(ctx)
	if err != nil {
		return nil, err
	}

	for _, list := range lists {
		if list.Name == name {
			return &list, nil
		}
	}
	return nil, errs.NewNotFound(fmt.Sprintf("no mailing list named %q in directory %s", name, d.directoryID))
}

// ResolveRoster resolves a mailing list name into a contacts roster
func (d *Directory) ResolveRoster(ctx context.Context, name string) (port.RosterWriter, error) {
	info, err := d.MailingListByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return newMailingList(d, *info), nil
}
