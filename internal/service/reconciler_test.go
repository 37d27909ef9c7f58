// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name         string
		source       []string
		destination  []string
		wantToAdd    []string
		wantToRemove []string
	}{
		{
			name:         "disjoint sets swap completely",
			source:       []string{"uid1", "uid2"},
			destination:  []string{"uid3", "uid4"},
			wantToAdd:    []string{"uid1", "uid2"},
			wantToRemove: []string{"uid3", "uid4"},
		},
		{
			name:         "partial overlap",
			source:       []string{"uid1", "uid2", "uid3"},
			destination:  []string{"uid2", "uid4"},
			wantToAdd:    []string{"uid1", "uid3"},
			wantToRemove: []string{"uid4"},
		},
		{
			name:         "identical sets produce empty diff",
			source:       []string{"uid1", "uid2"},
			destination:  []string{"uid1", "uid2"},
			wantToAdd:    []string{},
			wantToRemove: []string{},
		},
		{
			name:         "empty source removes everything",
			source:       nil,
			destination:  []string{"uid1"},
			wantToAdd:    []string{},
			wantToRemove: []string{"uid1"},
		},
		{
			name:         "empty destination adds everything",
			source:       []string{"uid1"},
			destination:  nil,
			wantToAdd:    []string{"uid1"},
			wantToRemove: []string{},
		},
		{
			name:         "both empty",
			source:       nil,
			destination:  nil,
			wantToAdd:    []string{},
			wantToRemove: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Diff(
				model.NewIdentifierSet(tt.source...),
				model.NewIdentifierSet(tt.destination...),
			)

			assert.Equal(t, tt.wantToAdd, diff.ToAdd.Sorted())
			assert.Equal(t, tt.wantToRemove, diff.ToRemove.Sorted())
		})
	}
}

func TestDiffSupersetOnlyAdds(t *testing.T) {
	// diff(A ∪ B, A) must yield exactly (B, nothing).
	a := []string{"uid1", "uid2"}
	b := []string{"uid3", "uid4"}

	diff := Diff(
		model.NewIdentifierSet(append(append([]string{}, a...), b...)...),
		model.NewIdentifierSet(a...),
	)

	assert.Equal(t, b, diff.ToAdd.Sorted())
	assert.Equal(t, 0, diff.ToRemove.Len())
}
