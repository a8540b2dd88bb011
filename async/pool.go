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

// Package async dispatches client calls onto a worker pool and hands the
// caller a future per call. Independently submitted calls have no
// ordering guarantee relative to each other; callers that need ordering
// must await one future before submitting the next.
package async

import (
	"context"
	"sync"
	"sync/atomic"
)

// Task is one queued unit of work.
type Task func()

// WorkerPool runs submitted tasks on a fixed set of workers.
type WorkerPool struct {
	numWorkers int
	tasks      chan Task
	wg         sync.WaitGroup
	started    atomic.Bool

	stopMutex sync.RWMutex
	stopped   bool
}

// WorkerPoolConfig holds configuration for creating a WorkerPool.
type WorkerPoolConfig struct {
	// NumWorkers is the number of parallel workers; defaults to 1 if <= 0.
	NumWorkers int
	// QueueSize is the submission queue capacity; defaults to twice the
	// number of workers if <= 0.
	QueueSize int
}

// NewWorkerPool creates a new worker pool. Tasks submitted before Start
// sit in the queue until the workers come up.
func NewWorkerPool(config WorkerPoolConfig) *WorkerPool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = numWorkers * 2
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		tasks:      make(chan Task, queueSize),
	}
}

// Start starts the worker pool. Call Stop to wait for completion.
// This method is idempotent - calling it multiple times has no effect.
func (p *WorkerPool) Start(ctx context.Context) {
	if p.started.Swap(true) {
		return // Already started
	}
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Submit queues a task for execution. It returns ErrPoolStopped once
// Stop has been called. Submit blocks while the queue is full.
func (p *WorkerPool) Submit(task Task) error {
	p.stopMutex.RLock()
	defer p.stopMutex.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	p.tasks <- task
	return nil
}

// Stop rejects further submissions, runs the tasks still queued, and
// waits for the workers to finish.
func (p *WorkerPool) Stop() {
	p.stopMutex.Lock()
	if p.stopped {
		p.stopMutex.Unlock()
		p.wg.Wait()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.stopMutex.Unlock()
	p.wg.Wait()
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
		}
	}
}
