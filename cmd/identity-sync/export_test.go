// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	"github.com/stanford-rc/identity-sync-service/internal/infrastructure/mock"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
)

func TestWriteResponseCSV(t *testing.T) {
	exporter := &mock.MockExporter{
		Tables: map[string]*model.ResponseTable{
			"SV_abcdefghij12345": {
				Header: []string{"ResponseId", "SUNetID"},
				Rows: [][]string{
					{"R_1", "uid1"},
					{"R_2", "uid2"},
				},
			},
		},
	}

	table, err := exporter.ExportResponses(context.Background(), "SV_abcdefghij12345")
	require.NoError(t, err)
	require.NotNil(t, table)

	var buf bytes.Buffer
	require.NoError(t, writeResponseCSV(&buf, table))

	assert.Equal(t, "ResponseId,SUNetID\nR_1,uid1\nR_2,uid2\n", buf.String())
	assert.Equal(t, []string{"SV_abcdefghij12345"}, exporter.ExportCalls)
}

func TestWriteResponseCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResponseCSV(&buf, &model.ResponseTable{}))
	assert.Empty(t, buf.String())
}

func TestMockExporterError(t *testing.T) {
	exporter := &mock.MockExporter{Err: errs.NewServiceUnavailable("export backend down")}

	_, err := exporter.ExportResponses(context.Background(), "SV_abcdefghij12345")
	require.Error(t, err)
	assert.ErrorAs(t, err, &errs.ServiceUnavailable{})
}
