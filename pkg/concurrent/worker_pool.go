// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package concurrent provides small helpers for running independent
// operations concurrently, such as publishing a batch of event messages.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs a set of functions concurrently with a bounded number of
// workers and joins their errors.
type WorkerPool struct {
	size int
}

// NewWorkerPool creates a WorkerPool with the given worker count.
// A size below 1 is treated as 1.
func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{size: size}
}

// Run executes all functions and blocks until they finish or the context is
// cancelled. The first error cancels the remaining work.
func (p *WorkerPool) Run(ctx context.Context, fns ...func() error) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for _, fn := range fns {
		g.Go(fn)
	}

	return g.Wait()
}
