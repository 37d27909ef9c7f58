// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	"github.com/stanford-rc/identity-sync-service/pkg/log"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// membershipSyncOrchestrator implements port.MembershipSyncWriter.
// All operations are synchronous and single-threaded: each remote call
// blocks until a response or a fatal error. There is no rollback across the
// remove-then-add sequence in Sync; a failure between the phases leaves the
// destination partially reconciled.
type membershipSyncOrchestrator struct {
	publisher port.MessagePublisher
}

// NewMembershipSyncWriter creates the sync orchestrator. The publisher may
// be nil, in which case no events are published.
func NewMembershipSyncWriter(publisher port.MessagePublisher) port.MembershipSyncWriter {
	return &membershipSyncOrchestrator{publisher: publisher}
}

// Copy adds the source's identifiers to the destination.
// Identifiers already present are subtracted up front so no duplicate-add
// calls are issued; a duplicate pruning pass afterwards defends against
// concurrent inserts that slipped through anyway.
func (o *membershipSyncOrchestrator) Copy(ctx context.Context, src port.Source, dst port.RosterWriter) (*model.SyncReport, error) {
	ctx, report, err := o.begin(ctx, model.ActionCopy, src, dst)
	if err != nil {
		return nil, err
	}

	srcSet, err := src.Identifiers(ctx)
	if err != nil {
		return nil, err
	}

	destSet, err := o.destinationIdentifiers(ctx, dst)
	if err != nil {
		return nil, err
	}

	addSet := srcSet.Subtract(destSet)
	slog.DebugContext(ctx, "computed additions",
		"source_size", srcSet.Len(),
		"destination_size", destSet.Len(),
		"to_add", addSet.Len(),
	)

	report.Added, report.Skipped, err = o.applyAdditions(ctx, dst, addSet.Sorted())
	if err != nil {
		return nil, err
	}

	if err := o.cleanup(ctx, dst, report, len(report.Added) > 0); err != nil {
		return nil, err
	}

	o.finish(ctx, report, dst)
	return report, nil
}

// Remove deletes the given identifiers from the destination. The removal
// list is first intersected with current membership: you cannot remove what
// is not present, and non-members are dropped without any remote call.
func (o *membershipSyncOrchestrator) Remove(ctx context.Context, identifiers []string, dst port.RosterWriter) (*model.SyncReport, error) {
	ctx, report, err := o.begin(ctx, model.ActionRemove, nil, dst)
	if err != nil {
		return nil, err
	}

	destSet, err := o.destinationIdentifiers(ctx, dst)
	if err != nil {
		return nil, err
	}

	removeSet := model.NewIdentifierSet(identifiers...).Intersect(destSet)
	if removeSet.Len() == 0 {
		slog.InfoContext(ctx, "none of the provided identifiers are members, nothing to remove",
			"requested", len(identifiers),
		)
		o.finish(ctx, report, dst)
		return report, nil
	}

	report.Removed, report.Skipped, err = o.applyRemovals(ctx, dst, removeSet.Sorted())
	if err != nil {
		return nil, err
	}

	if err := dst.Refresh(ctx); err != nil {
		return nil, err
	}

	o.finish(ctx, report, dst)
	return report, nil
}

// Sync makes the destination's membership equal to the source's set.
// Removals are applied before additions so stale members free their seats
// before new ones are added in quota-limited destinations.
func (o *membershipSyncOrchestrator) Sync(ctx context.Context, src port.Source, dst port.RosterWriter) (*model.SyncReport, error) {
	ctx, report, err := o.begin(ctx, model.ActionSync, src, dst)
	if err != nil {
		return nil, err
	}

	srcSet, err := src.Identifiers(ctx)
	if err != nil {
		return nil, err
	}

	destSet, err := o.destinationIdentifiers(ctx, dst)
	if err != nil {
		return nil, err
	}

	diff := Diff(srcSet, destSet)
	slog.InfoContext(ctx, "computed membership diff",
		"source_size", srcSet.Len(),
		"destination_size", destSet.Len(),
		"to_add", diff.ToAdd.Len(),
		"to_remove", diff.ToRemove.Len(),
	)

	var removeSkipped, addSkipped []string
	report.Removed, removeSkipped, err = o.applyRemovals(ctx, dst, diff.ToRemove.Sorted())
	if err != nil {
		return nil, err
	}

	report.Added, addSkipped, err = o.applyAdditions(ctx, dst, diff.ToAdd.Sorted())
	if err != nil {
		return nil, err
	}
	report.Skipped = append(removeSkipped, addSkipped...)

	mutated := len(report.Added) > 0 || len(report.Removed) > 0
	if err := o.cleanup(ctx, dst, report, mutated); err != nil {
		return nil, err
	}

	o.finish(ctx, report, dst)
	return report, nil
}

// Transfer copies the identifiers to every destination and then removes
// them from every source roster.
func (o *membershipSyncOrchestrator) Transfer(ctx context.Context, identifiers []string, sources []port.RosterWriter, destinations []port.RosterWriter) error {
	for _, dst := range destinations {
		if _, err := o.Copy(ctx, StaticSource(identifiers), dst); err != nil {
			return err
		}
	}
	for _, src := range sources {
		if _, err := o.Remove(ctx, identifiers, src); err != nil {
			return err
		}
	}
	return nil
}

// RemoveDuplicates scans the destination for records sharing an identifier
// and deletes all but the first encountered in collection order. A second
// pass over the same collection deletes nothing.
func (o *membershipSyncOrchestrator) RemoveDuplicates(ctx context.Context, dst port.RosterWriter) (int, error) {
	if dst == nil {
		return 0, errs.NewValidation("destination is required")
	}

	records, err := dst.Members(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(model.IdentifierSet, len(records))
	deleted := 0
	for _, rec := range records {
		if rec.Identifier == "" {
			continue
		}
		if !seen.Contains(rec.Identifier) {
			seen.Add(rec.Identifier)
			continue
		}

		if err := dst.DeleteRecord(ctx, rec.RecordKey); err != nil {
			if errors.As(err, &errs.NotFound{}) {
				// Already gone, nothing to prune.
				slog.InfoContext(ctx, "duplicate record already deleted",
					"destination", dst.Name(),
					"record_key", rec.RecordKey,
				)
				continue
			}
			return deleted, err
		}
		deleted++
		slog.InfoContext(ctx, "deleted duplicate record",
			"destination", dst.Name(),
			"identifier", rec.Identifier,
			"record_key", rec.RecordKey,
		)
	}

	if deleted > 0 {
		if err := dst.Refresh(ctx); err != nil {
			return deleted, err
		}
	}

	return deleted, nil
}

// begin validates the operation inputs and opens a logging scope keyed by a
// fresh operation UID.
func (o *membershipSyncOrchestrator) begin(ctx context.Context, action model.SyncAction, src port.Source, dst port.RosterWriter) (context.Context, *model.SyncReport, error) {
	if dst == nil {
		return ctx, nil, errs.NewValidation("destination is required")
	}
	if action != model.ActionRemove && src == nil {
		return ctx, nil, errs.NewValidation("source is required")
	}

	report := &model.SyncReport{
		OperationUID: uuid.New().String(),
		Action:       action,
		Kind:         dst.Kind(),
		Destination:  dst.Name(),
	}

	ctx = log.AppendCtx(ctx, slog.String("operation_uid", report.OperationUID))
	ctx = log.AppendCtx(ctx, slog.String("destination", dst.Name()))

	slog.InfoContext(ctx, "executing membership operation", "action", action)
	return ctx, report, nil
}

// destinationIdentifiers materializes the destination's current identifier
// set from its cached membership collection.
func (o *membershipSyncOrchestrator) destinationIdentifiers(ctx context.Context, dst port.Roster) (model.IdentifierSet, error) {
	records, err := dst.Members(ctx)
	if err != nil {
		return nil, err
	}

	set, skipped := model.IdentifiersOf(records)
	if skipped > 0 {
		slog.WarnContext(ctx, "destination records without identifiers",
			"skipped", skipped,
			"total", len(records),
		)
	}
	return set, nil
}

// applyAdditions adds each identifier with one remote call apiece.
// "Already a member" is informational and processing continues; permission
// denial and any other failure abort the batch.
func (o *membershipSyncOrchestrator) applyAdditions(ctx context.Context, dst port.RosterWriter, identifiers []string) (added, skipped []string, err error) {
	for _, id := range identifiers {
		if addErr := dst.AddMember(ctx, id); addErr != nil {
			if errors.As(addErr, &errs.Conflict{}) {
				slog.InfoContext(ctx, "identifier is already a member", "identifier", id)
				skipped = append(skipped, id)
				continue
			}
			if errors.As(addErr, &errs.Unauthorized{}) {
				slog.ErrorContext(ctx, "permission denied, aborting batch",
					"error", addErr,
					"identifier", id,
				)
				return added, skipped, addErr
			}
			slog.ErrorContext(ctx, "failed to add member",
				"error", addErr,
				"identifier", id,
			)
			return added, skipped, addErr
		}
		added = append(added, id)
	}
	return added, skipped, nil
}

// applyRemovals removes each identifier with one remote call apiece.
// "Not a member" is informational; permission denial and any other failure
// abort the batch.
func (o *membershipSyncOrchestrator) applyRemovals(ctx context.Context, dst port.RosterWriter, identifiers []string) (removed, skipped []string, err error) {
	for _, id := range identifiers {
		if rmErr := dst.RemoveMember(ctx, id); rmErr != nil {
			if errors.As(rmErr, &errs.NotFound{}) {
				slog.InfoContext(ctx, "identifier is not a member", "identifier", id)
				skipped = append(skipped, id)
				continue
			}
			if errors.As(rmErr, &errs.Unauthorized{}) {
				slog.ErrorContext(ctx, "permission denied, aborting batch",
					"error", rmErr,
					"identifier", id,
				)
				return removed, skipped, rmErr
			}
			slog.ErrorContext(ctx, "failed to remove member",
				"error", rmErr,
				"identifier", id,
			)
			return removed, skipped, rmErr
		}
		removed = append(removed, id)
	}
	return removed, skipped, nil
}

// cleanup refreshes the roster after a mutating batch and, for contacts
// destinations, runs the duplicate pruning pass.
func (o *membershipSyncOrchestrator) cleanup(ctx context.Context, dst port.RosterWriter, report *model.SyncReport, mutated bool) error {
	if mutated {
		if err := dst.Refresh(ctx); err != nil {
			return err
		}
	}

	if dst.Kind() != model.DestinationContacts {
		return nil
	}

	deleted, err := o.RemoveDuplicates(ctx, dst)
	if err != nil {
		return err
	}
	report.DuplicatesRemoved = deleted
	return nil
}

// finish stamps the report and publishes the audit and index events.
// Publishing failures are logged, never surfaced: the membership mutation
// already succeeded.
func (o *membershipSyncOrchestrator) finish(ctx context.Context, report *model.SyncReport, dst port.Roster) {
	report.CompletedAt = time.Now().UTC()

	slog.InfoContext(ctx, "membership operation completed",
		"action", report.Action,
		"added", len(report.Added),
		"removed", len(report.Removed),
		"skipped", len(report.Skipped),
		"duplicates_removed", report.DuplicatesRemoved,
	)

	o.publishReport(ctx, report, dst)
}
