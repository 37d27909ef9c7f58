// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package constants defines shared constant values for the identity sync service.
package constants

const (
	// ServiceName identifies this service on shared infrastructure
	ServiceName = "identity-sync-service"

	// ServiceQualtrics is the destination service name for XM Directory mailing lists
	ServiceQualtrics = "qualtrics"

	// ServiceWorkgroup is the destination service name for access-control workgroups
	ServiceWorkgroup = "workgroup"
)
