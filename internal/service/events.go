// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	"github.com/stanford-rc/identity-sync-service/pkg/concurrent"
	"github.com/stanford-rc/identity-sync-service/pkg/constants"
	"github.com/stanford-rc/identity-sync-service/pkg/log"
)

// publishReport publishes the audit and index events for a completed batch
// concurrently. Failures are logged and escalated via priority, but the
// sync operation itself already succeeded and is never failed here.
func (o *membershipSyncOrchestrator) publishReport(ctx context.Context, report *model.SyncReport, dst port.Roster) {
	if o.publisher == nil {
		slog.DebugContext(ctx, "publisher not available, skipping membership events")
		return
	}

	var members []string
	if records, err := dst.Members(ctx); err == nil {
		set, _ := model.IdentifiersOf(records)
		members = set.Sorted()
	} else {
		slog.WarnContext(ctx, "could not snapshot membership for index event", "error", err)
	}

	auditEvent := &model.AuditEvent{Report: report}
	indexEvent := &model.IndexEvent{
		Kind:        report.Kind,
		Destination: report.Destination,
		Members:     members,
	}

	messages := []func() error{
		func() error {
			return o.publisher.Audit(ctx, constants.AuditMembershipSubject, auditEvent)
		},
		func() error {
			return o.publisher.Index(ctx, constants.IndexMembershipSubject, indexEvent)
		},
	}

	if err := concurrent.NewWorkerPool(len(messages)).Run(ctx, messages...); err != nil {
		slog.ErrorContext(ctx, "failed to publish membership events",
			"error", err,
			log.PriorityCritical(),
		)
	}
}
