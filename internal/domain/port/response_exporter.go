// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// ResponseExporter drives the asynchronous bulk-export protocol for survey
// responses: trigger a job, poll until completion, download and decode the
// archive.
type ResponseExporter interface {
	ExportResponses(ctx context.Context, surveyID string) (*model.ResponseTable, error)
}
