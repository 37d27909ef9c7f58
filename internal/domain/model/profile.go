// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package model

// Profile is the flattened result of an institutional profile lookup.
type Profile struct {
	// UID is the institutional unique ID the profile was resolved from
	UID string `json:"uid"`

	// Affiliation is the active affiliation, lowercased, without the
	// service's field prefix (e.g. "staff", "student")
	Affiliation string `json:"affiliation"`

	// Position is the free-text position from the primary contact entry
	Position string `json:"position"`

	// Organization is the resolved organization alias, or the raw org code
	// when no alias is registered
	Organization string `json:"organization"`
}
