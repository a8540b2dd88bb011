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

package graph

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/wfystx/gnebula/transport"
	"github.com/wfystx/gnebula/wire"
)

// Client issues graph service calls over a single transport. A mutex
// serializes calls so each request/response exchange owns the transport end
// to end. The client does not retry or classify failures; that belongs to
// the caller.
type Client struct {
	transport *transport.Transport
	logger    *slog.Logger
	callMutex sync.Mutex
	seqNo     atomic.Uint32
}

// ClientOptionFunc is a type that represents functions that modify the
// call client
type ClientOptionFunc func(*Client)

// WithLogger specifies the logger to use. If none is provided, the default
// logger is used.
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a call client for the given transport.
func NewClient(trans *transport.Transport, options ...ClientOptionFunc) *Client {
	c := &Client{
		transport: trans,
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Transport returns the transport the client issues calls over
func (c *Client) Transport() *transport.Transport {
	return c.transport
}

// Authenticate opens a session for the given credentials.
func (c *Client) Authenticate(username, password []byte) (*AuthResponse, error) {
	c.logger.Debug("calling Authenticate()",
		"component", "graph",
		"remote", c.transport.RemoteAddr(),
	)
	req := &AuthRequest{}
	req.Username.Set(username)
	req.Password.Set(password)
	var resp AuthResponse
	if err := c.call(OpAuthenticate, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Execute runs a statement within the given session.
func (c *Client) Execute(sessionID int64, statement []byte) (*ExecuteResponse, error) {
	c.logger.Debug(
		fmt.Sprintf("calling Execute(session_id: %d)", sessionID),
		"component", "graph",
		"remote", c.transport.RemoteAddr(),
	)
	req := &ExecuteRequest{}
	req.SessionID.Set(sessionID)
	req.Statement.Set(statement)
	var resp ExecuteResponse
	if err := c.call(OpExecute, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signout ends the given session. It is a one-way call: no response is read
// and server-side failures go unreported.
func (c *Client) Signout(sessionID int64) error {
	c.logger.Debug(
		fmt.Sprintf("calling Signout(session_id: %d)", sessionID),
		"component", "graph",
		"remote", c.transport.RemoteAddr(),
	)
	req := &SignoutRequest{}
	req.SessionID.Set(sessionID)
	return c.call(OpSignout, req, nil)
}

// call performs one request/response exchange. A nil resp marks the call as
// one-way: the request is sent and no response is read.
func (c *Client) call(op uint16, req wire.Record, resp wire.Record) error {
	c.callMutex.Lock()
	defer c.callMutex.Unlock()
	payload, err := wire.EncodeRecord(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	seqNo := c.seqNo.Add(1)
	if err := c.transport.Send(transport.NewEnvelope(seqNo, op, payload, false)); err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	respEnv, err := c.transport.Receive()
	if err != nil {
		return err
	}
	if !respEnv.IsResponse() || respEnv.GetOperation() != op {
		return fmt.Errorf(
			"%w: operation %d",
			ErrUnexpectedResponse,
			respEnv.GetOperation(),
		)
	}
	if respEnv.SeqNo != seqNo {
		return fmt.Errorf(
			"%w: sequence number %d, expected %d",
			ErrUnexpectedResponse,
			respEnv.SeqNo,
			seqNo,
		)
	}
	if err := wire.DecodeRecord(respEnv.Payload, resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
