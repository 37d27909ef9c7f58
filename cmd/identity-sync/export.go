// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

func newExportCmd() *cobra.Command {
	var surveyID, outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a survey's recorded responses as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if surveyID == "" {
				return errs.NewValidation("--survey is required")
			}

			w, err := buildWiring(ctx)
			if err != nil {
				return err
			}
			defer w.close()

			if w.qualtrics == nil {
				return errs.NewValidation("qualtrics service is not configured")
			}

			table, err := w.qualtrics.ExportResponses(ctx, surveyID)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			return writeResponseCSV(out, table)
		},
	}
	cmd.Flags().StringVar(&surveyID, "survey", "", "survey identifier (SV_...)")
	cmd.Flags().StringVar(&outputPath, "output", "", "write CSV to this file instead of stdout")
	return cmd
}

// writeResponseCSV renders a response table as CSV, header first
func writeResponseCSV(out io.Writer, table *model.ResponseTable) error {
	writer := csv.NewWriter(out)
	if len(table.Header) > 0 {
		if err := writer.Write(table.Header); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
