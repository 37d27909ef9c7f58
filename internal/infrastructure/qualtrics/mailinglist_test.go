// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// directoryFixture serves a one-list directory with mutable contacts
type directoryFixture struct {
	contacts    []map[string]any
	addedBodies []ContactCreateOptions
	deletedIDs  []string
}

func (f *directoryFixture) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/mailinglists") && r.Method == http.MethodGet:
			writePage(w, []map[string]any{
				{"mailingListId": "ML_1", "name": "newsletter", "contactCount": len(f.contacts)},
				{"mailingListId": "ML_2", "name": "digest", "contactCount": 0},
			}, "")

		case strings.HasSuffix(r.URL.Path, "/mailinglists/ML_1/contacts") && r.Method == http.MethodGet:
			writePage(w, f.contacts, "")

		case strings.HasSuffix(r.URL.Path, "/mailinglists/ML_1/contacts") && r.Method == http.MethodPost:
			var body ContactCreateOptions
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.addedBodies = append(f.addedBodies, body)
			writePage(w, nil, "")

		case strings.Contains(r.URL.Path, "/mailinglists/ML_1/contacts/") && r.Method == http.MethodDelete:
			parts := strings.Split(r.URL.Path, "/")
			contactID := parts[len(parts)-1]
			f.deletedIDs = append(f.deletedIDs, contactID)
			for _, c := range f.contacts {
				if c["contactId"] == contactID {
					writePage(w, nil, "")
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestRoster(t *testing.T, fixture *directoryFixture) (*MailingList, func()) {
	t.Helper()

	server := httptest.NewServer(fixture.handler())
	client := newTestClient(t, server.URL)

	directory, err := NewDirectory(client)
	require.NoError(t, err)

	roster, err := directory.ResolveRoster(context.Background(), "newsletter")
	require.NoError(t, err)

	list, ok := roster.(*MailingList)
	require.True(t, ok)
	return list, server.Close
}

func TestDirectoryResolveRoster(t *testing.T) {
	fixture := &directoryFixture{}
	server := httptest.NewServer(fixture.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	directory, err := NewDirectory(client)
	require.NoError(t, err)

	t.Run("resolves a known list", func(t *testing.T) {
		roster, err := directory.ResolveRoster(context.Background(), "newsletter")
		require.NoError(t, err)
		assert.Equal(t, "newsletter", roster.Name())
		assert.Equal(t, model.DestinationContacts, roster.Kind())
	})

	t.Run("unknown list name", func(t *testing.T) {
		_, err := directory.ResolveRoster(context.Background(), "no-such-list")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
	})

	t.Run("lists all names", func(t *testing.T) {
		names, err := directory.ListNames(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"newsletter", "digest"}, names)
	})
}

func TestMailingListMembers(t *testing.T) {
	fixture := &directoryFixture{
		contacts: []map[string]any{
			{"contactId": "CID_1", "extRef": "uid1", "email": "uid1@example.edu"},
			{"contactId": "CID_2", "extRef": "uid2"},
		},
	}
	roster, closeServer := newTestRoster(t, fixture)
	defer closeServer()

	records, err := roster.Members(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "uid1", records[0].Identifier)
	assert.Equal(t, "CID_1", records[0].RecordKey)
	assert.Equal(t, "uid1@example.edu", records[0].Email)
}

func TestMailingListAddMember(t *testing.T) {
	t.Run("posts the identifier as extRef", func(t *testing.T) {
		fixture := &directoryFixture{}
		roster, closeServer := newTestRoster(t, fixture)
		defer closeServer()

		err := roster.AddMember(context.Background(), "uid1")
		require.NoError(t, err)

		require.Len(t, fixture.addedBodies, 1)
		assert.Equal(t, "uid1", fixture.addedBodies[0].ExtRef)
	})

	t.Run("existing member yields Conflict without a remote call", func(t *testing.T) {
		fixture := &directoryFixture{
			contacts: []map[string]any{{"contactId": "CID_1", "extRef": "uid1"}},
		}
		roster, closeServer := newTestRoster(t, fixture)
		defer closeServer()

		err := roster.AddMember(context.Background(), "uid1")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Conflict{})
		assert.Empty(t, fixture.addedBodies)
	})

	t.Run("empty identifier is rejected", func(t *testing.T) {
		fixture := &directoryFixture{}
		roster, closeServer := newTestRoster(t, fixture)
		defer closeServer()

		err := roster.AddMember(context.Background(), "")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Validation{})
	})
}

func TestMailingListRemoveMember(t *testing.T) {
	t.Run("deletes every record carrying the identifier", func(t *testing.T) {
		fixture := &directoryFixture{
			contacts: []map[string]any{
				{"contactId": "CID_1", "extRef": "uid1"},
				{"contactId": "CID_2", "extRef": "uid1"},
				{"contactId": "CID_3", "extRef": "uid2"},
			},
		}
		roster, closeServer := newTestRoster(t, fixture)
		defer closeServer()

		err := roster.RemoveMember(context.Background(), "uid1")
		require.NoError(t, err)
		assert.Equal(t, []string{"CID_1", "CID_2"}, fixture.deletedIDs)
	})

	t.Run("non-member yields NotFound without a remote call", func(t *testing.T) {
		fixture := &directoryFixture{
			contacts: []map[string]any{{"contactId": "CID_1", "extRef": "uid1"}},
		}
		roster, closeServer := newTestRoster(t, fixture)
		defer closeServer()

		err := roster.RemoveMember(context.Background(), "uid9")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
		assert.Empty(t, fixture.deletedIDs)
	})
}

func TestMailingListDeleteRecord(t *testing.T) {
	fixture := &directoryFixture{
		contacts: []map[string]any{{"contactId": "CID_1", "extRef": "uid1"}},
	}
	roster, closeServer := newTestRoster(t, fixture)
	defer closeServer()

	t.Run("deletes by contact id", func(t *testing.T) {
		err := roster.DeleteRecord(context.Background(), "CID_1")
		require.NoError(t, err)
	})

	t.Run("unknown record yields NotFound", func(t *testing.T) {
		err := roster.DeleteRecord(context.Background(), "CID_404")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
	})
}
