// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package workgroup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
	"github.com/stanford-rc/identity-sync-service/pkg/httpclient"
)

// workgroupFixture serves one stem with mutable membership
type workgroupFixture struct {
	stem    string
	name    string
	members []string

	addCalls    []string
	removeCalls []string
}

func (f *workgroupFixture) qualified() string {
	return f.stem + ":" + f.name
}

func (f *workgroupFixture) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/"+f.qualified():
			members := make([]map[string]any, 0, len(f.members))
			for _, uid := range f.members {
				members = append(members, map[string]any{"id": uid, "type": "USER"})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":    f.qualified(),
				"members": members,
			})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/search/"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{
					{"name": f.qualified()},
					{"name": f.stem + ":other-group"},
				},
			})

		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/"+f.qualified()+"/members/"):
			uid := strings.TrimPrefix(r.URL.Path, "/"+f.qualified()+"/members/")
			f.addCalls = append(f.addCalls, uid)
			for _, member := range f.members {
				if member == uid {
					w.WriteHeader(http.StatusConflict)
					return
				}
			}
			f.members = append(f.members, uid)

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/"+f.qualified()+"/members/"):
			uid := strings.TrimPrefix(r.URL.Path, "/"+f.qualified()+"/members/")
			f.removeCalls = append(f.removeCalls, uid)
			for i, member := range f.members {
				if member == uid {
					f.members = append(f.members[:i], f.members[i+1:]...)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestService(t *testing.T, fixture *workgroupFixture) (*Service, func()) {
	t.Helper()

	server := httptest.NewServer(fixture.handler())

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Stem = fixture.stem
	cfg.MaxAttempts = 2
	cfg.RetryDelay = time.Millisecond

	client, err := NewClient(cfg)
	require.NoError(t, err)

	service, err := NewService(client)
	require.NoError(t, err)
	return service, server.Close
}

func TestResolveRoster(t *testing.T) {
	fixture := &workgroupFixture{stem: "research", name: "cluster-users", members: []string{"uid1"}}
	service, closeServer := newTestService(t, fixture)
	defer closeServer()

	t.Run("resolves an existing workgroup", func(t *testing.T) {
		roster, err := service.ResolveRoster(context.Background(), "research", "cluster-users")
		require.NoError(t, err)
		assert.Equal(t, "cluster-users", roster.Name())
		assert.Equal(t, model.DestinationAccessGroup, roster.Kind())
	})

	t.Run("unknown workgroup", func(t *testing.T) {
		_, err := service.ResolveRoster(context.Background(), "research", "no-such-group")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
	})

	t.Run("missing stem or name", func(t *testing.T) {
		_, err := service.ResolveRoster(context.Background(), "", "cluster-users")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Validation{})
	})
}

func TestWorkgroupMembers(t *testing.T) {
	fixture := &workgroupFixture{stem: "research", name: "cluster-users", members: []string{"uid1", "uid2"}}
	service, closeServer := newTestService(t, fixture)
	defer closeServer()

	roster, err := service.ResolveRoster(context.Background(), "research", "cluster-users")
	require.NoError(t, err)

	records, err := roster.Members(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "uid1", records[0].Identifier)
	// Workgroup membership has no separate record key.
	assert.Equal(t, "uid1", records[0].RecordKey)
}

func TestWorkgroupAddMember(t *testing.T) {
	fixture := &workgroupFixture{stem: "research", name: "cluster-users", members: []string{"uid1"}}
	service, closeServer := newTestService(t, fixture)
	defer closeServer()

	roster, err := service.ResolveRoster(context.Background(), "research", "cluster-users")
	require.NoError(t, err)

	t.Run("adds a new member", func(t *testing.T) {
		require.NoError(t, roster.AddMember(context.Background(), "uid2"))
		assert.Contains(t, fixture.members, "uid2")
	})

	t.Run("existing member yields Conflict", func(t *testing.T) {
		err := roster.AddMember(context.Background(), "uid1")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Conflict{})
	})

	t.Run("empty identifier is rejected", func(t *testing.T) {
		err := roster.AddMember(context.Background(), "")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Validation{})
	})
}

func TestWorkgroupRemoveMember(t *testing.T) {
	fixture := &workgroupFixture{stem: "research", name: "cluster-users", members: []string{"uid1"}}
	service, closeServer := newTestService(t, fixture)
	defer closeServer()

	roster, err := service.ResolveRoster(context.Background(), "research", "cluster-users")
	require.NoError(t, err)

	t.Run("removes a member", func(t *testing.T) {
		require.NoError(t, roster.RemoveMember(context.Background(), "uid1"))
		assert.NotContains(t, fixture.members, "uid1")
	})

	t.Run("non-member yields NotFound", func(t *testing.T) {
		err := roster.RemoveMember(context.Background(), "uid9")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
	})

	t.Run("delete record goes through membership removal", func(t *testing.T) {
		require.NoError(t, roster.AddMember(context.Background(), "uid3"))
		require.NoError(t, roster.DeleteRecord(context.Background(), "uid3"))
		assert.NotContains(t, fixture.members, "uid3")
	})
}

func TestSearch(t *testing.T) {
	fixture := &workgroupFixture{stem: "research", name: "cluster-users"}
	service, closeServer := newTestService(t, fixture)
	defer closeServer()

	names, err := service.client.Search(context.Background(), "research")
	require.NoError(t, err)
	assert.Equal(t, []string{"cluster-users", "other-group"}, names)
}

func TestMapHTTPErrorUnclassifiedStatus(t *testing.T) {
	err := MapHTTPError(context.Background(), &httpclient.RetryableError{
		StatusCode: http.StatusTeapot,
		Message:    "teapot",
	})

	require.Error(t, err)
	assert.ErrorAs(t, err, &errs.Unexpected{})
	assert.Contains(t, err.Error(), "418")
}
