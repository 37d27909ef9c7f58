// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// profilesResponse is the envelope of a profile query
type profilesResponse struct {
	Values []profileDocument `json:"values"`
}

// profileDocument is one profile as served by the API. Only the fields the
// lookup condenses are decoded; the documents are much larger than this.
type profileDocument struct {
	UID           string              `json:"uid"`
	Affiliations  affiliationList     `json:"affiliations"`
	Contacts      []contactObject     `json:"contacts"`
	Advisees      []map[string]any    `json:"advisees"`
	Titles        []titleObject       `json:"titles"`
	Organizations []organizationEntry `json:"organizations"`
}

// affiliationFlag is one entry of the affiliations block
type affiliationFlag struct {
	Name   string
	Active bool
}

// affiliationList keeps the affiliations block in document order. The block
// is served as a JSON object, and the first active flag decides the
// condensed affiliation, so decoding it into a map would make the pick
// depend on map iteration order.
type affiliationList []affiliationFlag

// UnmarshalJSON walks the object tokens so key order survives decoding
func (l *affiliationList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("affiliations: expected an object, got %v", tok)
	}

	flags := affiliationList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("affiliations: expected a key, got %v", keyTok)
		}

		var active bool
		if err := dec.Decode(&active); err != nil {
			return fmt.Errorf("affiliations: flag %q: %w", key, err)
		}
		flags = append(flags, affiliationFlag{Name: key, Active: active})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = flags
	return nil
}

// contactObject carries the position of a profile's primary contact block
type contactObject struct {
	Position string `json:"position"`
}

// titleObject is one appointment title; "pr" marks the primary appointment
type titleObject struct {
	AppointmentType string `json:"appointmentType"`
	Organization    orgRef `json:"organization"`
}

// organizationEntry is one organization association on a profile
type organizationEntry struct {
	Type         string `json:"type"`
	Organization orgRef `json:"organization"`
}

// orgRef points to an organization by its code
type orgRef struct {
	OrgCode string `json:"orgCode"`
}

// orgResponse is the envelope of an organization lookup
type orgResponse struct {
	Alias string `json:"alias"`
	Name  string `json:"name"`
}
