// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package service implements the membership reconciliation use cases.
package service

import (
	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
)

// Diff reconciles a source identifier set against a destination's current
// membership using exact set subtraction both ways. No normalization or
// fuzzy matching is applied.
func Diff(source, destination model.IdentifierSet) model.DiffResult {
	return model.DiffResult{
		ToAdd:    source.Subtract(destination),
		ToRemove: destination.Subtract(source),
	}
}
