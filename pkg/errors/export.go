// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// ExportTrigger represents a failure to obtain a progress identifier when
// submitting a bulk export job.
type ExportTrigger struct {
	base
}

// Error returns the error message for ExportTrigger.
func (e ExportTrigger) Error() string {
	return e.error()
}

// Unwrap returns the wrapped error, if any.
func (e ExportTrigger) Unwrap() error {
	return e.err
}

// NewExportTrigger creates a new ExportTrigger error with the provided message.
func NewExportTrigger(message string, err ...error) ExportTrigger {
	return ExportTrigger{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// ExportTimeout represents a bounded export poll loop that exceeded its
// maximum attempt count before the job completed.
type ExportTimeout struct {
	base
}

// Error returns the error message for ExportTimeout.
func (e ExportTimeout) Error() string {
	return e.error()
}

// Unwrap returns the wrapped error, if any.
func (e ExportTimeout) Unwrap() error {
	return e.err
}

// NewExportTimeout creates a new ExportTimeout error with the provided message.
func NewExportTimeout(message string, err ...error) ExportTimeout {
	return ExportTimeout{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// ExportDownload represents a failure to download or decode a completed
// export archive.
type ExportDownload struct {
	base
}

// Error returns the error message for ExportDownload.
func (e ExportDownload) Error() string {
	return e.error()
}

// Unwrap returns the wrapped error, if any.
func (e ExportDownload) Unwrap() error {
	return e.err
}

// NewExportDownload creates a new ExportDownload error with the provided message.
func NewExportDownload(message string, err ...error) ExportDownload {
	return ExportDownload{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
