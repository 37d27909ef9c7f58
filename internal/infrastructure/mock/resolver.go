// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"

	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// MockContactsDirectory resolves mailing list names to mock rosters.
type MockContactsDirectory struct {
	Rosters map[string]*MockRoster
}

// NewMockContactsDirectory creates a directory over the given rosters.
func NewMockContactsDirectory(rosters ...*MockRoster) *MockContactsDirectory {
	d := &MockContactsDirectory{Rosters: make(map[string]*MockRoster)}
	for _, r := range rosters {
		d.Rosters[r.Name()] = r
	}
	return d
}

// ResolveRoster resolves a list name, failing NotFound for unknown names.
func (d *MockContactsDirectory) ResolveRoster(_ context.Context, name string) (port.RosterWriter, error) {
	roster, ok := d.Rosters[name]
	if !ok {
		return nil, errs.NewNotFound(fmt.Sprintf("no mailing list named %q", name))
	}
	return roster, nil
}

// MockGroupDirectory resolves workgroup names to mock rosters.
type MockGroupDirectory struct {
	Stem    string
	Rosters map[string]*MockRoster
}

// NewMockGroupDirectory creates a directory over the given rosters.
func NewMockGroupDirectory(stem string, rosters ...*MockRoster) *MockGroupDirectory {
	d := &MockGroupDirectory{Stem: stem, Rosters: make(map[string]*MockRoster)}
	for _, r := range rosters {
		d.Rosters[r.Name()] = r
	}
	return d
}

// ResolveRoster resolves a workgroup name under the stem.
func (d *MockGroupDirectory) ResolveRoster(_ context.Context, stem, name string) (port.RosterWriter, error) {
	if stem != d.Stem {
		return nil, errs.NewNotFound(fmt.Sprintf("no workgroups under stem %q", stem))
	}
	roster, ok := d.Rosters[name]
	if !ok {
		return nil, errs.NewNotFound(fmt.Sprintf("no workgroup named %q under %q", name, stem))
	}
	return roster, nil
}
