// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

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
// A 5xx or 429 surfacing here means the retry ceiling was already spent on it.
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var retryableErr *httpclient.RetryableError
	if errors.As(err, &retryableErr) {
		slog.WarnContext(ctx, "Qualtrics HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", retryableErr.Message,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errs.NewNotFound("resource not found in Qualtrics", err)
		case http.StatusConflict:
			return errs.NewConflict("resource already exists in Qualtrics", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.NewUnauthorized("Qualtrics rejected the credentials", err)
		case http.StatusBadRequest:
			return errs.NewValidation(fmt.Sprintf("Qualtrics validation error: %s", retryableErr.Message), err)
		case http.StatusTooManyRequests:
			return errs.NewRetriesExhausted("Qualtrics rate limit persisted through retries", err)
		default:
			if retryableErr.StatusCode >= http.StatusInternalServerError {
				return errs.NewRetriesExhausted("Qualtrics server errors persisted through retries", err)
			}
			slog.ErrorContext(ctx, "unexpected Qualtrics HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", retryableErr.Message,
			)
			return errs.NewUnexpected(fmt.Sprintf("Qualtrics API error (status %d)", retryableErr.StatusCode), err)
		}
	}

	slog.ErrorContext(ctx, "Qualtrics request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errs.NewUnexpected("Qualtrics request failed", err)
}
