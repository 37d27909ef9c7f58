// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/stanford-rc/identity-sync-service/internal/infrastructure/profiles"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

func newProfileCmd() *cobra.Command {
	var uid, community string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Look up a condensed profile by institutional identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if uid == "" {
				return errs.NewValidation("--uid is required")
			}

			client, err := profiles.NewClient(profiles.NewConfigFromEnv())
			if err != nil {
				return err
			}

			profile, err := client.ProfileByUID(ctx, uid, community)
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "institutional identifier to look up")
	cmd.Flags().StringVar(&community, "community", "", "profile visibility level")
	return cmd
}
