// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the identity sync service.
package model

import "sort"

// IdentifierSet is an unordered collection of unique identifiers.
// Identifiers are opaque string tokens; equality is exact string match and
// no normalization (case, whitespace) is ever applied.
type IdentifierSet map[string]struct{}

// NewIdentifierSet creates a set from the given identifiers, dropping
// duplicates and empty strings.
func NewIdentifierSet(ids ...string) IdentifierSet {
	s := make(IdentifierSet, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identifier into the set. Empty identifiers are ignored.
func (s IdentifierSet) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Contains reports whether the identifier is in the set.
func (s IdentifierSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s IdentifierSet) Len() int {
	return len(s)
}

// Subtract returns a new set with the members of s that are not in other.
func (s IdentifierSet) Subtract(other IdentifierSet) IdentifierSet {
	out := make(IdentifierSet)
	for id := range s {
		if !other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Intersect returns a new set with the members present in both s and other.
func (s IdentifierSet) Intersect(other IdentifierSet) IdentifierSet {
	out := make(IdentifierSet)
	for id := range s {
		if other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the identifiers in lexical order. Batches iterate the
// sorted slice so remote mutations happen in a deterministic order.
func (s IdentifierSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DiffResult holds the outcome of reconciling a source set against a
// destination's current membership.
type DiffResult struct {
	// ToAdd contains identifiers present in the source but absent from the destination
	ToAdd IdentifierSet `json:"to_add"`

	// ToRemove contains identifiers present in the destination but absent from the source
	ToRemove IdentifierSet `json:"to_remove"`
}
