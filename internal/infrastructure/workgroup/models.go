// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package workgroup

// WorkgroupObject is the API representation of one workgroup
type WorkgroupObject struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Members        []MemberObject `json:"members"`
	Administrators []MemberObject `json:"administrators"`
	MemberCount    int            `json:"memberCount"`
	LastUpdated    string         `json:"lastUpdated"`
}

// MemberObject is one workgroup member. ID is the institutional identifier;
// workgroup membership is keyed directly by it, there is no separate record key.
type MemberObject struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// SearchResultsObject is the response of a workgroup search
type SearchResultsObject struct {
	Results []SearchEntryObject `json:"results"`
}

// SearchEntryObject is one search hit, its Name fully qualified as "stem:name"
type SearchEntryObject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
