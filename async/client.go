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

package async

import (
	"context"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	nebula "github.com/wfystx/gnebula"
	"github.com/wfystx/gnebula/graph"
)

// Client wraps a synchronous client and submits its calls to a worker
// pool, returning a future per call. The underlying client serializes
// calls on its session, so extra workers add queueing, not parallelism,
// for a single client.
type Client struct {
	client *nebula.Client
	pool   *WorkerPool

	nextID   atomic.Uint64
	inFlight *xsync.MapOf[uint64, <-chan struct{}]
}

// ClientOptionFunc is a type that represents functions that modify the async client
type ClientOptionFunc func(*WorkerPoolConfig)

// WithWorkers specifies the number of pool workers
func WithWorkers(numWorkers int) ClientOptionFunc {
	return func(cfg *WorkerPoolConfig) {
		cfg.NumWorkers = numWorkers
	}
}

// WithQueueSize specifies the submission queue capacity
func WithQueueSize(queueSize int) ClientOptionFunc {
	return func(cfg *WorkerPoolConfig) {
		cfg.QueueSize = queueSize
	}
}

// NewClient returns an async client dispatching calls for the given
// client. The pool starts immediately; Close stops it.
func NewClient(client *nebula.Client, options ...ClientOptionFunc) *Client {
	var cfg WorkerPoolConfig
	for _, option := range options {
		option(&cfg)
	}
	c := &Client{
		client:   client,
		pool:     NewWorkerPool(cfg),
		inFlight: xsync.NewMapOf[uint64, <-chan struct{}](),
	}
	c.pool.Start(context.Background())
	return c
}

// submit queues fn on the pool and returns its future. A rejected
// submission completes the future immediately with the pool error.
func submit[T any](c *Client, fn func() (T, error)) *Future[T] {
	future := newFuture[T]()
	id := c.nextID.Add(1)
	c.inFlight.Store(id, future.Done())
	err := c.pool.Submit(func() {
		value, err := fn()
		// Drop the registry entry before completing so the call is
		// gone from InFlight once its result is observable
		c.inFlight.Delete(id)
		future.complete(value, err)
	})
	if err != nil {
		c.inFlight.Delete(id)
		var zero T
		future.complete(zero, err)
	}
	return future
}

// Connect submits a Connect call.
func (c *Client) Connect(ctx context.Context) *Future[struct{}] {
	return submit(c, func() (struct{}, error) {
		return struct{}{}, c.client.Connect(ctx)
	})
}

// Execute submits an Execute call.
func (c *Client) Execute(ctx context.Context, statement string) *Future[graph.ErrorCode] {
	return submit(c, func() (graph.ErrorCode, error) {
		return c.client.Execute(ctx, statement)
	})
}

// ExecuteQuery submits an ExecuteQuery call.
func (c *Client) ExecuteQuery(ctx context.Context, statement string) *Future[*nebula.ResultSet] {
	return submit(c, func() (*nebula.ResultSet, error) {
		return c.client.ExecuteQuery(ctx, statement)
	})
}

// SwitchSpace submits a SwitchSpace call.
func (c *Client) SwitchSpace(ctx context.Context, space string) *Future[struct{}] {
	return submit(c, func() (struct{}, error) {
		return struct{}{}, c.client.SwitchSpace(ctx, space)
	})
}

// InFlight returns the number of submitted calls that have not completed
// yet.
func (c *Client) InFlight() int {
	return c.inFlight.Size()
}

// Close stops the pool after running the calls still queued, then closes
// the underlying client. Every future completes before Close returns.
func (c *Client) Close() error {
	c.pool.Stop()
	return c.client.Close()
}
