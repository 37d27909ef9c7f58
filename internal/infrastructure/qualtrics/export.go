// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// surveyIDPattern matches well-formed Qualtrics survey identifiers
var surveyIDPattern = regexp.MustCompile(`^SV_[a-zA-Z0-9]{15}$`)

// ExportResponses downloads all recorded responses of a survey as a table.
// The export is asynchronous on the Qualtrics side: a trigger call starts the
// job, a poll loop waits for it to finish, and a download call fetches the
// zipped CSV. Polling backs off exponentially and is bounded by
// ExportMaxPolls; zero polls without bound.
func (c *Client) ExportResponses(ctx context.Context, surveyID string) (*model.ResponseTable, error) {
	if !surveyIDPattern.MatchString(surveyID) {
		return nil, errs.NewValidation(fmt.Sprintf("malformed survey id: %q", surveyID))
	}

	exportURL := fmt.Sprintf("%s/API/v3/surveys/%s/export-responses/", c.config.APIBaseURL(), surveyID)

	job, err := c.triggerExport(ctx, exportURL)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "survey response export started",
		"survey_id", surveyID,
		"progress_id", job.ProgressID,
	)

	job, err = c.awaitExport(ctx, exportURL, job)
	if err != nil {
		return nil, err
	}

	return c.downloadExport(ctx, exportURL, job.FileID)
}

// triggerExport starts an asynchronous CSV export job
func (c *Client) triggerExport(ctx context.Context, exportURL string) (*model.ExportJob, error) {
	var response envelope[ExportProgressObject]
	err := c.makeRequest(ctx, http.MethodPost, exportURL, ExportCreateOptions{Format: "csv"}, &response)
	if err != nil {
		return nil, errs.NewExportTrigger("failed to start response export", err)
	}
	if response.Result.ProgressID == "" {
		return nil, errs.NewExportTrigger("export trigger response carried no progress id")
	}

	return &model.ExportJob{
		ProgressID: response.Result.ProgressID,
		Status:     model.ExportStatusInProgress,
	}, nil
}

// awaitExport polls the job status until it resolves or the poll budget runs out
func (c *Client) awaitExport(ctx context.Context, exportURL string, job *model.ExportJob) (*model.ExportJob, error) {
	for attempt := 1; ; attempt++ {
		var response envelope[ExportProgressObject]
		err := c.makeRequest(ctx, http.MethodGet, exportURL+job.ProgressID, nil, &response)
		if err != nil {
			return nil, err
		}

		job.Status = response.Result.Status
		job.PercentComplete = response.Result.PercentComplete
		job.FileID = response.Result.FileID

		slog.DebugContext(ctx, "export progress",
			"progress_id", job.ProgressID,
			"status", job.Status,
			"percent_complete", job.PercentComplete,
			"attempt", attempt,
		)

		if job.Status == model.ExportStatusFailed {
			return nil, errs.NewUnexpected("response export failed on the Qualtrics side")
		}
		if job.Done() {
			return job, nil
		}

		if c.config.ExportMaxPolls > 0 && attempt >= c.config.ExportMaxPolls {
			return nil, errs.NewExportTimeout(fmt.Sprintf("export still in progress after %d polls", attempt))
		}
		if c.config.ExportMaxPolls == 0 && attempt == 10 {
			slog.WarnContext(ctx, "export poll loop is unbounded and still waiting",
				"progress_id", job.ProgressID,
				"attempt", attempt,
			)
		}

		// Doubling backoff, capped once polling runs long.
		shift := attempt
		if shift > 6 {
			shift = 6
		}
		delay := c.config.ExportPollDelay * time.Duration(1<<uint(shift))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// downloadExport fetches the finished export file and parses its CSV payload.
// The file endpoint serves a zip archive holding a single CSV entry.
func (c *Client) downloadExport(ctx context.Context, exportURL, fileID string) (*model.ResponseTable, error) {
	if fileID == "" {
		return nil, errs.NewExportDownload("completed export carried no file id")
	}

	payload, err := c.rawRequest(ctx, exportURL+fileID+"/file")
	if err != nil {
		return nil, errs.NewExportDownload("failed to download export file", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, errs.NewExportDownload("export file is not a zip archive", err)
	}
	if len(archive.File) == 0 {
		return nil, errs.NewExportDownload("export archive is empty")
	}

	entry, err := archive.File[0].Open()
	if err != nil {
		return nil, errs.NewExportDownload("failed to open export archive entry", err)
	}
	defer entry.Close()

	return parseResponseCSV(entry)
}

// parseResponseCSV reads the export CSV into a header row and data rows
func parseResponseCSV(r io.Reader) (*model.ResponseTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errs.NewExportDownload("failed to parse export CSV", err)
	}
	if len(rows) == 0 {
		return &model.ResponseTable{}, nil
	}

	return &model.ResponseTable{
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}
