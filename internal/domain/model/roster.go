// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package model

// DestinationKind is the tagged variant discriminator for membership
// destinations. Each kind declares which record field carries the
// identifier, so reconciliation and duplicate pruning never inspect
// concrete destination types.
type DestinationKind string

const (
	// DestinationContacts is a contacts-style mailing list; records are keyed
	// by the external reference field and deleted by contact key.
	DestinationContacts DestinationKind = "contacts"

	// DestinationAccessGroup is an access-control workgroup; the member id is
	// both the identifier and the record key.
	DestinationAccessGroup DestinationKind = "access_group"
)

// MemberRecord is one entry of a destination's membership collection.
type MemberRecord struct {
	// Identifier is the institutional unique ID carried by the record.
	// Empty when a contacts record has no external reference set.
	Identifier string `json:"identifier"`

	// RecordKey is the opaque per-record key used for deletion
	// (contact key for contacts, member id for access groups)
	RecordKey string `json:"record_key"`

	// Email is optional enrichment carried by some destinations
	Email string `json:"email,omitempty"`
}

// IdentifiersOf extracts the identifier set from a membership collection.
// Records without an identifier are skipped; the count of skipped records is
// returned so callers can log possible schema mismatches.
func IdentifiersOf(records []MemberRecord) (IdentifierSet, int) {
	set := make(IdentifierSet, len(records))
	skipped := 0
	for _, rec := range records {
		if rec.Identifier == "" {
			skipped++
			continue
		}
		set[rec.Identifier] = struct{}{}
	}
	return set, skipped
}
