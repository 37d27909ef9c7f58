// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// MockExporter serves a canned response table keyed by survey id.
type MockExporter struct {
	Tables map[string]*model.ResponseTable
	Err    error

	ExportCalls []string
}

// ExportResponses returns the scripted table for the survey.
func (e *MockExporter) ExportResponses(_ context.Context, surveyID string) (*model.ResponseTable, error) {
	e.ExportCalls = append(e.ExportCalls, surveyID)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Tables[surveyID], nil
}
