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

// Package nebula implements a client for the NebulaGraph database service.
//
// A client holds a single authenticated session against one host chosen
// from a configured set. Connection establishment retries across randomly
// chosen hosts under a bounded attempt budget; statement execution retries
// transient server-side rejections under a separate budget. The async
// package wraps the same calls in a worker pool for callers that want
// future-style handles.
//
// This package is the main entry point into this library. The wire, graph,
// and transport packages can be used outside of this one, but it's not a
// primary design goal.
package nebula

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/wfystx/gnebula/graph"
	"github.com/wfystx/gnebula/internal/retry"
	"github.com/wfystx/gnebula/transport"
)

// The Client type maintains one authenticated session against a service
// host and executes statements over it. All calls on one client share the
// session and transport, so a mutex serializes them.
type Client struct {
	config   Config
	username string
	password string
	logger   *slog.Logger
	metrics  *ClientMetrics

	callMutex sync.Mutex
	transport *transport.Transport
	graph     *graph.Client
	sessionID int64
}

// NewClient returns a new Client object with the specified options. An
// error is returned when the resulting configuration is invalid; no
// network I/O happens until Connect.
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		config: DefaultConfig(),
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if err := c.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.metrics = newClientMetrics()
	return c, nil
}

// Metrics returns the client's metrics.
func (c *Client) Metrics() *ClientMetrics {
	return c.metrics
}

// IsConnected returns whether the client holds an open session.
func (c *Client) IsConnected() bool {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	return c.isConnectedLocked()
}

// SessionID returns the server-issued session identifier, or zero when
// the client is not connected.
func (c *Client) SessionID() int64 {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	if !c.isConnectedLocked() {
		return 0
	}
	return c.sessionID
}

// Connect establishes an authenticated session. Each attempt picks a host
// uniformly at random from the configured addresses, dials a fresh
// transport, and authenticates. An explicit credential rejection returns
// ErrBadCredentials immediately; any other failure moves on to the next
// attempt until the connection retry budget is exhausted, which returns an
// error wrapping ErrFailToConnect.
func (c *Client) Connect(ctx context.Context) error {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	if c.isConnectedLocked() {
		return ErrAlreadyConnected
	}
	policy := retry.Policy{
		Attempts: c.config.ConnectionRetry,
		Backoff:  c.config.RetryBackoff,
		Retryable: func(err error) bool {
			// Retrying the same bad credentials cannot succeed
			return !errors.Is(err, ErrBadCredentials)
		},
	}
	err := retry.Do(ctx, policy, func() error {
		return c.connectOnce()
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBadCredentials):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf(
			"%w: %d attempts, last error: %w",
			ErrFailToConnect,
			c.config.ConnectionRetry,
			err,
		)
	}
}

// connectOnce performs a single connection attempt against a randomly
// chosen host. On success the transport, graph client, and session ID are
// recorded on the client.
func (c *Client) connectOnce() error {
	host := c.config.Addresses[rand.Intn(len(c.config.Addresses))]
	c.metrics.connectAttempts.Inc()
	trans, err := transport.Dial(
		host.Host,
		host.Port,
		c.config.Timeout,
		transport.WithRequestTimeout(c.config.Timeout),
	)
	if err != nil {
		c.metrics.connectFailures.Inc()
		c.logger.Debug(
			"connection attempt failed",
			"component", "client",
			"remote", host.String(),
			"error", err,
		)
		return err
	}
	graphClient := graph.NewClient(trans, graph.WithLogger(c.logger))
	resp, err := graphClient.Authenticate([]byte(c.username), []byte(c.password))
	if err != nil {
		trans.Close()
		c.metrics.connectFailures.Inc()
		c.logger.Debug(
			"authentication attempt failed",
			"component", "client",
			"remote", host.String(),
			"error", err,
		)
		return err
	}
	code, ok := resp.ErrorCode.Get()
	if !ok {
		trans.Close()
		c.metrics.connectFailures.Inc()
		return fmt.Errorf("authenticate: %w", graph.ErrUnexpectedResponse)
	}
	if code == graph.CodeBadUsernamePassword {
		trans.Close()
		c.metrics.connectFailures.Inc()
		return ErrBadCredentials
	}
	if code != graph.CodeSucceeded {
		trans.Close()
		c.metrics.connectFailures.Inc()
		c.logger.Debug(
			"authentication rejected",
			"component", "client",
			"remote", host.String(),
			"code", code.String(),
			"message", string(resp.ErrorMsg.Value()),
		)
		return fmt.Errorf(
			"authenticate: %s: %s",
			code,
			string(resp.ErrorMsg.Value()),
		)
	}
	sessionID, ok := resp.SessionID.Get()
	if !ok {
		trans.Close()
		c.metrics.connectFailures.Inc()
		return fmt.Errorf("authenticate: %w: no session ID", graph.ErrUnexpectedResponse)
	}
	c.transport = trans
	c.graph = graphClient
	c.sessionID = sessionID
	c.metrics.sessionsOpened.Inc()
	c.logger.Debug(
		"session established",
		"component", "client",
		"remote", host.String(),
	)
	return nil
}

// Execute runs a statement against the established session and returns
// the server's error code. Transient server-side execution errors are
// retried under the execution retry budget; any other non-success code is
// returned as data with a nil error. A transport fault is terminal for
// the call and returned as a *ConnectionError alongside CodeRPCFailure;
// the returned code only classifies the failure when err is non-nil.
func (c *Client) Execute(ctx context.Context, statement string) (graph.ErrorCode, error) {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	if !c.isConnectedLocked() {
		return graph.CodeDisconnected, ErrNotConnected
	}
	start := time.Now()
	defer c.metrics.executeDuration.UpdateDuration(start)
	var lastCode graph.ErrorCode
	policy := retry.Policy{
		Attempts:  c.config.ExecutionRetry,
		Backoff:   c.config.RetryBackoff,
		Retryable: executionRetryable,
	}
	err := retry.Do(ctx, policy, func() error {
		resp, err := c.graph.Execute(c.sessionID, []byte(statement))
		if err != nil {
			// A transport fault is terminal for this call
			return &ConnectionError{Err: err}
		}
		code, ok := resp.ErrorCode.Get()
		if !ok {
			return &ConnectionError{Err: graph.ErrUnexpectedResponse}
		}
		lastCode = code
		if code == graph.CodeSucceeded {
			return nil
		}
		c.logger.Debug(
			"statement returned non-success code",
			"component", "client",
			"code", code.String(),
			"message", string(resp.ErrorMsg.Value()),
		)
		return &QueryError{
			Code: code,
			Msg:  string(resp.ErrorMsg.Value()),
		}
	})
	var queryErr *QueryError
	switch {
	case err == nil:
		c.metrics.executes.Inc()
		return lastCode, nil
	case errors.As(err, &queryErr):
		// An application-level rejection is data on the mutation path
		c.metrics.executeFailures.Inc()
		return queryErr.Code, nil
	default:
		c.metrics.executeFailures.Inc()
		return graph.CodeRPCFailure, err
	}
}

// executionRetryable declares which execute failures are worth another
// attempt. Transient server-side execution errors retry; syntax errors,
// session problems, and transport faults are terminal for the call.
func executionRetryable(err error) bool {
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Code == graph.CodeExecutionError
	}
	return false
}

// ExecuteQuery runs a statement and returns its result payload. It makes
// a single attempt: a transport fault is returned as a *ConnectionError,
// a non-success error code as a *QueryError carrying the server's code
// and message.
func (c *Client) ExecuteQuery(ctx context.Context, statement string) (*ResultSet, error) {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	if !c.isConnectedLocked() {
		return nil, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer c.metrics.executeDuration.UpdateDuration(start)
	resp, err := c.graph.Execute(c.sessionID, []byte(statement))
	if err != nil {
		c.metrics.queryFailures.Inc()
		return nil, &ConnectionError{Err: err}
	}
	code, ok := resp.ErrorCode.Get()
	if !ok {
		c.metrics.queryFailures.Inc()
		return nil, &ConnectionError{Err: graph.ErrUnexpectedResponse}
	}
	if code != graph.CodeSucceeded {
		c.metrics.queryFailures.Inc()
		c.logger.Debug(
			"query returned non-success code",
			"component", "client",
			"code", code.String(),
			"message", string(resp.ErrorMsg.Value()),
		)
		return nil, &QueryError{
			Code: code,
			Msg:  string(resp.ErrorMsg.Value()),
		}
	}
	c.metrics.queries.Inc()
	return newResultSet(resp), nil
}

// SwitchSpace changes the session's default space by issuing a USE
// statement.
func (c *Client) SwitchSpace(ctx context.Context, space string) error {
	code, err := c.Execute(ctx, "USE "+space)
	if err != nil {
		return err
	}
	if code != graph.CodeSucceeded {
		return &QueryError{Code: code}
	}
	return nil
}

// Close signs out the session and closes the transport. It is safe to
// call on an unconnected or already-closed client; Connect may be called
// again afterwards.
func (c *Client) Close() error {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	if c.transport == nil {
		return nil
	}
	// Best-effort signout; the server drops the session with the
	// connection either way
	if c.transport.IsOpen() {
		if err := c.graph.Signout(c.sessionID); err != nil {
			c.logger.Debug(
				"signout failed",
				"component", "client",
				"error", err,
			)
		}
	}
	err := c.transport.Close()
	c.transport = nil
	c.graph = nil
	c.sessionID = 0
	return err
}

func (c *Client) isConnectedLocked() bool {
	return c.transport != nil && c.transport.IsOpen()
}
