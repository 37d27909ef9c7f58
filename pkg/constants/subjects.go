// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package constants

// NATS subjects for events published after mutating membership batches.
const (
	// AuditMembershipSubject carries sync reports for the audit trail consumer
	AuditMembershipSubject = "identity-sync.membership.audit"

	// IndexMembershipSubject carries membership snapshots for search indexing
	IndexMembershipSubject = "identity-sync.membership.index"
)
