// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsAllFunctions(t *testing.T) {
	var count atomic.Int32

	pool := NewWorkerPool(2)
	err := pool.Run(context.Background(),
		func() error { count.Add(1); return nil },
		func() error { count.Add(1); return nil },
		func() error { count.Add(1); return nil },
	)

	require.NoError(t, err)
	assert.Equal(t, int32(3), count.Load())
}

func TestWorkerPoolJoinsErrors(t *testing.T) {
	wantErr := errors.New("publish failed")

	pool := NewWorkerPool(2)
	err := pool.Run(context.Background(),
		func() error { return nil },
		func() error { return wantErr },
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestWorkerPoolZeroSize(t *testing.T) {
	pool := NewWorkerPool(0)
	err := pool.Run(context.Background(), func() error { return nil })
	require.NoError(t, err)
}
