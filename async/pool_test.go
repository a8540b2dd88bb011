// Copyright 2026 wfystx
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package async_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/wfystx/gnebula/async"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	defer goleak.VerifyNone(t)
	pool := async.NewWorkerPool(async.WorkerPoolConfig{
		NumWorkers: 4,
		QueueSize:  2,
	})
	pool.Start(context.Background())

	var counter atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(func() {
			counter.Add(1)
		}))
	}
	// Stop drains the queue before returning
	pool.Stop()
	assert.Equal(t, int32(20), counter.Load())
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	defer goleak.VerifyNone(t)
	pool := async.NewWorkerPool(async.WorkerPoolConfig{NumWorkers: 1})
	pool.Start(context.Background())
	pool.Stop()

	err := pool.Submit(func() {})
	assert.ErrorIs(t, err, async.ErrPoolStopped)
}

func TestWorkerPoolStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	pool := async.NewWorkerPool(async.WorkerPoolConfig{NumWorkers: 2})
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()
}

func TestWorkerPoolStartIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	pool := async.NewWorkerPool(async.WorkerPoolConfig{NumWorkers: 2})
	pool.Start(context.Background())
	pool.Start(context.Background())

	var counter atomic.Int32
	require.NoError(t, pool.Submit(func() {
		counter.Add(1)
	}))
	pool.Stop()
	assert.Equal(t, int32(1), counter.Load())
}
