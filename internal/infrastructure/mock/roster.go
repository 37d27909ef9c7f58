// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package mock provides in-memory implementations of the domain ports for
// testing the reconciliation use cases without remote services.
package mock

import (
	"context"
	"fmt"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// MockRoster is an in-memory membership destination. It mimics the remote
// semantics the orchestrator depends on: add returns Conflict for existing
// members, remove returns NotFound for absent ones, and the cached view
// only changes on Refresh-triggering mutations.
type MockRoster struct {
	kind    model.DestinationKind
	name    string
	records []model.MemberRecord
	nextKey int

	// Error injection, keyed by identifier or record key.
	AddErrors    map[string]error
	RemoveErrors map[string]error
	DeleteErrors map[string]error
	MembersErr   error
	RefreshErr   error

	// Call counters for assertions.
	AddCalls     []string
	RemoveCalls  []string
	DeleteCalls  []string
	RefreshCalls int
}

// NewMockRoster creates a roster of the given kind seeded with records.
func NewMockRoster(kind model.DestinationKind, name string, records ...model.MemberRecord) *MockRoster {
	r := &MockRoster{
		kind:         kind,
		name:         name,
		records:      append([]model.MemberRecord{}, records...),
		nextKey:      1000,
		AddErrors:    make(map[string]error),
		RemoveErrors: make(map[string]error),
		DeleteErrors: make(map[string]error),
	}
	return r
}

// Kind returns the destination variant tag.
func (r *MockRoster) Kind() model.DestinationKind { return r.kind }

// Name returns the roster name.
func (r *MockRoster) Name() string { return r.name }

// Members returns the current records.
func (r *MockRoster) Members(_ context.Context) ([]model.MemberRecord, error) {
	if r.MembersErr != nil {
		return nil, r.MembersErr
	}
	return append([]model.MemberRecord{}, r.records...), nil
}

// Refresh counts the refresh; the in-memory view is always current.
func (r *MockRoster) Refresh(_ context.Context) error {
	r.RefreshCalls++
	return r.RefreshErr
}

// AddMember appends a record for the identifier.
func (r *MockRoster) AddMember(_ context.Context, identifier string) error {
	r.AddCalls = append(r.AddCalls, identifier)

	if err, ok := r.AddErrors[identifier]; ok {
		return err
	}
	for _, rec := range r.records {
		if rec.Identifier == identifier {
			return errs.NewConflict(fmt.Sprintf("%s is already a member", identifier))
		}
	}

	r.nextKey++
	r.records = append(r.records, model.MemberRecord{
		Identifier: identifier,
		RecordKey:  fmt.Sprintf("REC_%d", r.nextKey),
	})
	return nil
}

// RemoveMember deletes every record carrying the identifier.
func (r *MockRoster) RemoveMember(_ context.Context, identifier string) error {
	r.RemoveCalls = append(r.RemoveCalls, identifier)

	if err, ok := r.RemoveErrors[identifier]; ok {
		return err
	}

	kept := r.records[:0]
	found := false
	for _, rec := range r.records {
		if rec.Identifier == identifier {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept

	if !found {
		return errs.NewNotFound(fmt.Sprintf("%s is not a member", identifier))
	}
	return nil
}

// DeleteRecord deletes one record by key.
func (r *MockRoster) DeleteRecord(_ context.Context, recordKey string) error {
	r.DeleteCalls = append(r.DeleteCalls, recordKey)

	if err, ok := r.DeleteErrors[recordKey]; ok {
		return err
	}

	for i, rec := range r.records {
		if rec.RecordKey == recordKey {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFound(fmt.Sprintf("record %s not found", recordKey))
}

// Identifiers returns the current identifier set, for assertions.
func (r *MockRoster) Identifiers() []string {
	set, _ := model.IdentifiersOf(r.records)
	return set.Sorted()
}

// RecordCount returns the number of records, duplicates included.
func (r *MockRoster) RecordCount() int { return len(r.records) }
