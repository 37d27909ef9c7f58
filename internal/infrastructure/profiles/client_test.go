// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package profiles

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

	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

func newTestProfileClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.MaxAttempts = 2
	cfg.RetryDelay = time.Millisecond

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func profileServer(t *testing.T, docs map[string]map[string]any, orgs map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/cap-api/api/profiles/v1"):
			uid := r.URL.Query().Get("uids")
			doc, ok := docs[uid]
			values := []map[string]any{}
			if ok {
				values = append(values, doc)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"values": values})

		case strings.HasPrefix(r.URL.Path, "/cap-api/api/cap/v1/orgs/"):
			code := strings.TrimPrefix(r.URL.Path, "/cap-api/api/cap/v1/orgs/")
			alias, ok := orgs[code]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"alias": alias})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestProfileByUID(t *testing.T) {
	docs := map[string]map[string]any{
		"uid1": {
			"uid":          "uid1",
			"affiliations": map[string]bool{"capStaff": true, "capFaculty": false},
			"contacts":     []map[string]any{{"position": "Research Engineer"}},
			"organizations": []map[string]any{
				{"type": "affiliation", "organization": map[string]any{"orgCode": "RCC"}},
			},
		},
		"uid2": {
			"uid":          "uid2",
			"affiliations": map[string]bool{"capFaculty": true},
			"advisees":     []map[string]any{{"uid": "uid9"}},
			"titles": []map[string]any{
				{"appointmentType": "sec", "organization": map[string]any{"orgCode": "OTHER"}},
				{"appointmentType": "pr", "organization": map[string]any{"orgCode": "PHYS"}},
			},
		},
	}
	orgs := map[string]string{
		"RCC":  "Research Computing Center",
		"PHYS": "Physics",
	}

	server := profileServer(t, docs, orgs)
	defer server.Close()
	client := newTestProfileClient(t, server.URL)

	t.Run("condenses a staff profile", func(t *testing.T) {
		profile, err := client.ProfileByUID(context.Background(), "uid1", "stanford")
		require.NoError(t, err)

		assert.Equal(t, "uid1", profile.UID)
		assert.Equal(t, "staff", profile.Affiliation)
		assert.Equal(t, "Research Engineer", profile.Position)
		assert.Equal(t, "Research Computing Center", profile.Organization)
	})

	t.Run("faculty with advisees resolve through the primary appointment", func(t *testing.T) {
		profile, err := client.ProfileByUID(context.Background(), "uid2", "")
		require.NoError(t, err)

		assert.Equal(t, "faculty", profile.Affiliation)
		assert.Equal(t, "Physics", profile.Organization)
	})

	t.Run("unknown uid yields NotFound", func(t *testing.T) {
		_, err := client.ProfileByUID(context.Background(), "uid404", "")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
	})

	t.Run("invalid community fails before any remote call", func(t *testing.T) {
		_, err := client.ProfileByUID(context.Background(), "uid1", "everyone")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Validation{})
	})

	t.Run("empty uid is rejected", func(t *testing.T) {
		_, err := client.ProfileByUID(context.Background(), "", "")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.Validation{})
	})
}

func TestProfileAffiliationFollowsDocumentOrder(t *testing.T) {
	// Two active flags; the one listed first must win on every lookup. The
	// body is served verbatim so the key order is pinned, with the later key
	// sorting before the earlier one to catch map-based decoding.
	body := `{"values":[{"uid":"uid3","affiliations":{"capStudent":true,"capStaff":true}}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()
	client := newTestProfileClient(t, server.URL)

	for i := 0; i < 50; i++ {
		profile, err := client.ProfileByUID(context.Background(), "uid3", "")
		require.NoError(t, err)
		assert.Equal(t, "student", profile.Affiliation)
	}
}

func TestAffiliationListUnmarshal(t *testing.T) {
	t.Run("preserves key order", func(t *testing.T) {
		var flags affiliationList
		require.NoError(t, json.Unmarshal([]byte(`{"capStudent":false,"capStaff":true,"capFaculty":true}`), &flags))

		require.Len(t, flags, 3)
		assert.Equal(t, affiliationFlag{Name: "capStudent", Active: false}, flags[0])
		assert.Equal(t, affiliationFlag{Name: "capStaff", Active: true}, flags[1])
		assert.Equal(t, affiliationFlag{Name: "capFaculty", Active: true}, flags[2])
	})

	t.Run("null yields no flags", func(t *testing.T) {
		var flags affiliationList
		require.NoError(t, json.Unmarshal([]byte(`null`), &flags))
		assert.Empty(t, flags)
	})

	t.Run("non-object input is rejected", func(t *testing.T) {
		var flags affiliationList
		require.Error(t, json.Unmarshal([]byte(`["capStaff"]`), &flags))
	})
}

func TestOrgAlias(t *testing.T) {
	server := profileServer(t, nil, map[string]string{"RCC": "Research Computing Center"})
	defer server.Close()
	client := newTestProfileClient(t, server.URL)

	t.Run("resolves a known code", func(t *testing.T) {
		alias, err := client.OrgAlias(context.Background(), "RCC")
		require.NoError(t, err)
		assert.Equal(t, "Research Computing Center", alias)
	})

	t.Run("unknown code yields NotFound", func(t *testing.T) {
		_, err := client.OrgAlias(context.Background(), "NOPE")
		require.Error(t, err)
		assert.ErrorAs(t, err, &errs.NotFound{})
	})
}

func TestIsValidCommunity(t *testing.T) {
	for _, community := range validCommunities {
		assert.True(t, isValidCommunity(community), community)
	}
	assert.False(t, isValidCommunity("everyone"))
	assert.False(t, isValidCommunity("PUBLIC"))
}
