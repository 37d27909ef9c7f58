// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := contextHandler{slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := AppendCtx(context.Background(), slog.String("operation_uid", "op-123"))
	ctx = AppendCtx(ctx, slog.String("destination", "test-list"))

	logger.InfoContext(ctx, "sync started")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "sync started", record["msg"])
	assert.Equal(t, "op-123", record["operation_uid"])
	assert.Equal(t, "test-list", record["destination"])
}

func TestAppendCtxNilParent(t *testing.T) {
	ctx := AppendCtx(nil, slog.String("key", "value"))
	require.NotNil(t, ctx)

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	require.True(t, ok)
	assert.Len(t, attrs, 1)
}

func TestPriorityCritical(t *testing.T) {
	attr := PriorityCritical()
	assert.Equal(t, "priority", attr.Key)
	assert.Equal(t, "critical", attr.Value.String())
}
