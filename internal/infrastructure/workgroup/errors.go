// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package workgroup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
	"github.com/stanford-rc/identity-sync-service/pkg/httpclient"
)

// MapHTTPError maps httpclient errors to domain errors with proper context logging.
// The workgroup API signals "already a member" with 409 and "not a member"
// with 404 on membership mutations; both are informational to batch loops.
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var retryableErr *httpclient.RetryableError
	if errors.As(err, &retryableErr) {
		slog.WarnContext(ctx, "workgroup HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", retryableErr.Message,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errs.NewNotFound("resource not found in workgroup service", err)
		case http.StatusConflict:
			return errs.NewConflict("resource already exists in workgroup service", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.NewUnauthorized("workgroup service denied the operation", err)
		case http.StatusBadRequest:
			return errs.NewValidation(fmt.Sprintf("workgroup validation error: %s", retryableErr.Message), err)
		case http.StatusTooManyRequests:
			return errs.NewRetriesExhausted("workgroup rate limit persisted through retries", err)
		default:
			if retryableErr.StatusCode >= http.StatusInternalServerError {
				return errs.NewRetriesExhausted("workgroup server errors persisted through retries", err)
			}
			slog.ErrorContext(ctx, "unexpected workgroup HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", retryableErr.Message,
			)
			return errs.NewUnexpected(fmt.Sprintf("workgroup API error (status %d)", retryableErr.StatusCode), err)
		}
	}

	slog.ErrorContext(ctx, "workgroup request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errs.NewUnexpected("workgroup request failed", err)
}
