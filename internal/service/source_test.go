// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	"github.com/stanford-rc/identity-sync-service/internal/infrastructure/mock"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

func TestStaticSourceIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		input StaticSource
		want  []string
	}{
		{
			name:  "drops duplicates and empties",
			input: StaticSource{"uid2", "uid1", "uid2", ""},
			want:  []string{"uid1", "uid2"},
		},
		{
			name:  "empty list",
			input: StaticSource{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := tt.input.Identifiers(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Sorted())
		})
	}
}

func TestRosterSourceIdentifiers(t *testing.T) {
	t.Run("extracts identifiers from records", func(t *testing.T) {
		roster := mock.NewMockRoster(model.DestinationContacts, "alumni",
			model.MemberRecord{Identifier: "uid1", RecordKey: "REC_1"},
			model.MemberRecord{Identifier: "uid2", RecordKey: "REC_2"},
		)

		set, err := NewRosterSource(roster).Identifiers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"uid1", "uid2"}, set.Sorted())
	})

	t.Run("records without identifiers yield an empty set, not an error", func(t *testing.T) {
		roster := mock.NewMockRoster(model.DestinationContacts, "no-refs",
			model.MemberRecord{RecordKey: "REC_1", Email: "a@example.edu"},
			model.MemberRecord{RecordKey: "REC_2", Email: "b@example.edu"},
		)

		set, err := NewRosterSource(roster).Identifiers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})

	t.Run("propagates collection errors", func(t *testing.T) {
		roster := mock.NewMockRoster(model.DestinationContacts, "broken")
		roster.MembersErr = errs.NewUnexpected("listing failed")

		_, err := NewRosterSource(roster).Identifiers(context.Background())
		require.Error(t, err)
	})
}
