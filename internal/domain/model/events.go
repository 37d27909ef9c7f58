// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package model

import "time"

// SyncAction describes which orchestrator operation produced an event.
type SyncAction string

const (
	ActionCopy        SyncAction = "copy"
	ActionRemove      SyncAction = "remove"
	ActionSync        SyncAction = "sync"
	ActionDeduplicate SyncAction = "deduplicate"
)

// SyncReport summarizes one mutating batch against a destination.
type SyncReport struct {
	// OperationUID uniquely identifies the batch across log lines and events
	OperationUID string `json:"operation_uid"`

	// Action is the orchestrator operation that ran
	Action SyncAction `json:"action"`

	// Kind is the destination variant the batch ran against
	Kind DestinationKind `json:"kind"`

	// Destination is the list or group name of the target roster
	Destination string `json:"destination"`

	// Added and Removed list the identifiers actually applied, in batch order
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`

	// Skipped lists identifiers dropped as informational (already present on
	// add, absent on remove)
	Skipped []string `json:"skipped,omitempty"`

	// DuplicatesRemoved counts records deleted by the cleanup pass
	DuplicatesRemoved int `json:"duplicates_removed,omitempty"`

	// CompletedAt is when the batch finished
	CompletedAt time.Time `json:"completed_at"`
}

// AuditEvent is published on the audit subject after every mutating batch.
type AuditEvent struct {
	Report *SyncReport `json:"report"`
}

// IndexEvent is published on the index subject so downstream search indexes
// can refresh the destination's membership.
type IndexEvent struct {
	Kind        DestinationKind `json:"kind"`
	Destination string          `json:"destination"`
	Members     []string        `json:"members"`
}
