// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	"github.com/stanford-rc/identity-sync-service/internal/service"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

var (
	flagIDs         []string
	flagFromService string
	flagFromList    string
)

// addSourceFlags registers the source selection flags on a command
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&flagIDs, "ids", nil, "identifiers to use as the source set")
	cmd.Flags().StringVar(&flagFromService, "from-service", "", "service holding the source roster")
	cmd.Flags().StringVar(&flagFromList, "from-list", "", "name of the source roster")
}

// resolveSource builds the sync source from the flags: an explicit identifier
// list, or another roster's membership
func resolveSource(ctx context.Context, w *wiring) (port.Source, error) {
	if len(flagIDs) > 0 {
		return service.StaticSource(flagIDs), nil
	}
	if flagFromService != "" && flagFromList != "" {
		roster, err := w.resolver.Resolve(ctx, flagFromService, flagFromList)
		if err != nil {
			return nil, err
		}
		return service.NewRosterSource(roster), nil
	}
	return nil, errs.NewValidation("a source is required: --ids, or --from-service with --from-list")
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Make a destination's membership equal to the source set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			src, err := resolveSource(ctx, w)
			if err != nil {
				return err
			}
			dst, err := w.resolveDestination(ctx)
			if err != nil {
				return err
			}

			report, err := w.writer.Sync(ctx, src, dst)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Add the source set's members to a destination",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			src, err := resolveSource(ctx, w)
			if err != nil {
				return err
			}
			dst, err := w.resolveDestination(ctx)
			if err != nil {
				return err
			}

			report, err := w.writer.Copy(ctx, src, dst)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove identifiers from a destination",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(flagIDs) == 0 {
				return errs.NewValidation("--ids is required")
			}

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			dst, err := w.resolveDestination(ctx)
			if err != nil {
				return err
			}

			report, err := w.writer.Remove(ctx, flagIDs, dst)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	cmd.Flags().StringSliceVar(&flagIDs, "ids", nil, "identifiers to remove")
	return cmd
}

func newTransferCmd() *cobra.Command {
	var fromLists, toLists []string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy identifiers to destinations, then remove them from sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(flagIDs) == 0 {
				return errs.NewValidation("--ids is required")
			}
			if len(fromLists) == 0 || len(toLists) == 0 {
				return errs.NewValidation("--from and --to are required")
			}

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			var sources, destinations []port.RosterWriter
			for _, name := range fromLists {
				roster, err := w.resolver.Resolve(ctx, flagService, name)
				if err != nil {
					return err
				}
				sources = append(sources, roster)
			}
			for _, name := range toLists {
				roster, err := w.resolver.Resolve(ctx, flagService, name)
				if err != nil {
					return err
				}
				destinations = append(destinations, roster)
			}

			return w.writer.Transfer(ctx, flagIDs, sources, destinations)
		},
	}
	cmd.Flags().StringSliceVar(&flagIDs, "ids", nil, "identifiers to transfer")
	cmd.Flags().StringSliceVar(&fromLists, "from", nil, "source roster names")
	cmd.Flags().StringSliceVar(&toLists, "to", nil, "destination roster names")
	return cmd
}

func newDedupeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Delete duplicate records from a destination, keeping the first of each",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			dst, err := w.resolveDestination(ctx)
			if err != nil {
				return err
			}

			deleted, err := w.writer.RemoveDuplicates(ctx, dst)
			if err != nil {
				return err
			}
			return printJSON(map[string]int{"duplicates_removed": deleted})
		},
	}
}
