// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/stanford-rc/identity-sync-service/pkg/constants"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "List the rosters a service exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			switch flagService {
			case constants.ServiceQualtrics:
				if w.directory == nil {
					return errs.NewValidation("qualtrics service is not configured")
				}
				names, err := w.directory.ListNames(ctx)
				if err != nil {
					return err
				}
				return printJSON(names)

			case constants.ServiceWorkgroup:
				if w.groups == nil {
					return errs.NewValidation("workgroup service is not configured")
				}
				names, err := w.groups.Search(ctx, w.stem)
				if err != nil {
					return err
				}
				return printJSON(names)

			default:
				return errs.NewValidation("--service must be qualtrics or workgroup")
			}
		},
	}
}
