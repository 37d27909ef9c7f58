// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	"github.com/stanford-rc/identity-sync-service/internal/infrastructure/nats"
	"github.com/stanford-rc/identity-sync-service/internal/infrastructure/qualtrics"
	"github.com/stanford-rc/identity-sync-service/internal/infrastructure/workgroup"
	"github.com/stanford-rc/identity-sync-service/internal/service"
	"github.com/stanford-rc/identity-sync-service/pkg/log"
)

var (
	flagService string
	flagList    string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "identity-sync",
		Short:         "Reconcile membership between identifier sources and remote destinations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Local overrides first, then the environment.
			_ = godotenv.Load()
			log.InitStructureLogConfig()

			viper.SetEnvPrefix("IDSYNC")
			viper.AutomaticEnv()
		},
	}

	root.PersistentFlags().StringVar(&flagService, "service", "", "destination service (qualtrics or workgroup)")
	root.PersistentFlags().StringVar(&flagList, "list", "", "destination list or workgroup name")

	root.AddCommand(
		newSyncCmd(),
		newCopyCmd(),
		newRemoveCmd(),
		newTransferCmd(),
		newDedupeCmd(),
		newListsCmd(),
		newExportCmd(),
		newProfileCmd(),
	)
	return root
}

func execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// wiring holds the constructed service adapters for one invocation
type wiring struct {
	resolver  port.DestinationResolver
	writer    port.MembershipSyncWriter
	qualtrics *qualtrics.Client
	directory *qualtrics.Directory
	groups    *workgroup.Service
	stem      string
	natsConn  *nats.NATSClient
}

// buildWiring constructs the configured adapters. Services without
// credentials in the environment stay nil and resolving against them fails
// with a validation error.
func buildWiring(ctx context.Context) (*wiring, error) {
	w := &wiring{}

	qualtricsCfg := qualtrics.NewConfigFromEnv()
	if qualtricsCfg.APIToken != "" || qualtricsCfg.ClientID != "" {
		client, err := qualtrics.NewClient(qualtricsCfg)
		if err != nil {
			return nil, err
		}
		w.qualtrics = client

		if qualtricsCfg.DirectoryID != "" {
			directory, err := qualtrics.NewDirectory(client)
			if err != nil {
				return nil, err
			}
			w.directory = directory
		}
	}

	workgroupCfg := workgroup.NewConfigFromEnv()
	if workgroupCfg.CertFile != "" || viper.GetBool("workgroup_insecure") {
		client, err := workgroup.NewClient(workgroupCfg)
		if err != nil {
			return nil, err
		}
		groups, err := workgroup.NewService(client)
		if err != nil {
			return nil, err
		}
		w.groups = groups
		w.stem = workgroupCfg.Stem
	}

	var publisher port.MessagePublisher
	if os.Getenv("NATS_URL") != "" {
		natsClient, err := nats.NewClient(ctx, nats.NewConfigFromEnv())
		if err != nil {
			slog.WarnContext(ctx, "NATS unavailable, membership events will not be published", "error", err)
		} else {
			w.natsConn = natsClient
			publisher = nats.NewMessagePublisher(natsClient)
		}
	}

	var contacts service.ContactsRosterResolver
	if w.directory != nil {
		contacts = w.directory
	}
	var groups service.GroupRosterResolver
	if w.groups != nil {
		groups = w.groups
	}

	w.resolver = service.NewDestinationResolver(contacts, groups, w.stem)
	w.writer = service.NewMembershipSyncWriter(publisher)
	return w, nil
}

// close releases shared connections
func (w *wiring) close() {
	if w.natsConn != nil {
		_ = w.natsConn.Close()
	}
}

// resolveDestination resolves the --service/--list flags into a roster
func (w *wiring) resolveDestination(ctx context.Context) (port.RosterWriter, error) {
	return w.resolver.Resolve(ctx, flagService, flagList)
}

// printJSON renders a result on stdout
func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
