// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-querystring/query"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// MailingList is a contacts roster backed by one Qualtrics mailing list.
// The contact collection is fetched lazily and cached; mutations do not
// update the cache, callers refresh after a mutating batch. Qualtrics
// happily stores several contacts with the same extRef, which is why this
// roster reports the contacts destination kind and gets duplicate pruning.
type MailingList struct {
	directory *Directory
	info      MailingListObject

	records []model.MemberRecord
	loaded  bool
}

// newMailingList wraps a directory mailing list entry as a roster
func newMailingList(directory *Directory, info MailingListObject) *MailingList {
	return &MailingList{
		directory: directory,
		info:      info,
	}
}

// Kind returns the contacts destination kind
func (m *MailingList) Kind() model.DestinationKind {
	return model.DestinationContacts
}

// Name returns the mailing list's display name
func (m *MailingList) Name() string {
	return m.info.Name
}

// contactsURL returns the contacts collection root of this mailing list
func (m *MailingList) contactsURL() string {
	return fmt.Sprintf("%s/mailinglists/%s/contacts", m.directory.baseURL(), m.info.MailingListID)
}

// Members returns the cached contact records, fetching them on first use
func (m *MailingList) Members(ctx context.Context) ([]model.MemberRecord, error) {
	if !m.loaded {
		if err := m.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return m.records, nil
}

// Refresh discards the cached contacts and collects the current collection
func (m *MailingList) Refresh(ctx context.Context) error {
	params, err := query.Values(listOptions{PageSize: m.directory.client.config.PageSize})
	if err != nil {
		return errs.NewUnexpected("failed to encode listing options", err)
	}

	contacts, err := CollectPages[ContactObject](ctx, m.directory.client, m.contactsURL()+"?"+params.Encode())
	if err != nil {
		return err
	}

	records := make([]model.MemberRecord, 0, len(contacts))
	for _, contact := range contacts {
		records = append(records, model.MemberRecord{
			Identifier: contact.ExtRef,
			RecordKey:  contact.ContactID,
			Email:      contact.Email,
		})
	}
	m.records = records
	m.loaded = true

	slog.DebugContext(ctx, "refreshed mailing list contacts",
		"mailing_list", m.info.Name,
		"contacts", len(records),
	)
	return nil
}

// AddMember creates a contact carrying the identifier as its extRef.
// The directory itself accepts duplicate extRefs, so membership is checked
// against the cached collection first and a Conflict returned for members.
func (m *MailingList) AddMember(ctx context.Context, identifier string) error {
	if identifier == "" {
		return errs.NewValidation("identifier is required")
	}

	records, err := m.Members(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Identifier == identifier {
			return errs.NewConflict(fmt.Sprintf("%s is already on mailing list %q", identifier, m.info.Name))
		}
	}

	options := ContactCreateOptions{ExtRef: identifier}
	if err := m.directory.client.makeRequest(ctx, http.MethodPost, m.contactsURL(), options, nil); err != nil {
		return err
	}

	slog.InfoContext(ctx, "added contact to mailing list",
		"mailing_list", m.info.Name,
		"identifier", identifier,
	)
	return nil
}

// RemoveMember deletes every contact record carrying the identifier
func (m *MailingList) RemoveMember(ctx context.Context, identifier string) error {
	if identifier == "" {
		return errs.NewValidation("identifier is required")
	}

	records, err := m.Members(ctx)
	if err != nil {
		return err
	}

	var keys []string
	for _, rec := range records {
		if rec.Identifier == identifier {
			keys = append(keys, rec.RecordKey)
		}
	}
	if len(keys) == 0 {
		return errs.NewNotFound(fmt.Sprintf("%s is not on mailing list %q", identifier, m.info.Name))
	}

	for _, key := range keys {
		if err := m.DeleteRecord(ctx, key); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "removed contact from mailing list",
		"mailing_list", m.info.Name,
		"identifier", identifier,
		"records_deleted", len(keys),
	)
	return nil
}

// DeleteRecord deletes a single contact record by its contact id
func (m *MailingList) DeleteRecord(ctx context.Context, recordKey string) error {
	if recordKey == "" {
		return errs.NewValidation("record key is required")
	}
	return m.directory.client.makeRequest(ctx, http.MethodDelete, m.contactsURL()+"/"+recordKey, nil, nil)
}
