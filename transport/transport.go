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

// Package transport frames record payloads into envelopes over a single
// network connection to one graph service host.
package transport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Transport owns a single network connection and exchanges envelopes over
// it. Sends are serialized internally; callers are expected to serialize
// complete Send/Receive exchanges themselves. A Transport never retries I/O,
// any fault is surfaced to the caller and the connection is left to the
// owner to close.
type Transport struct {
	conn           net.Conn
	sendMutex      sync.Mutex
	onceClose      sync.Once
	closed         atomic.Bool
	requestTimeout time.Duration
}

// TransportOptionFunc is a type that represents functions that modify a
// Transport
type TransportOptionFunc func(*Transport)

// WithRequestTimeout specifies a deadline applied to each individual send
// and receive. Zero (the default) means no deadline.
func WithRequestTimeout(timeout time.Duration) TransportOptionFunc {
	return func(t *Transport) {
		t.requestTimeout = timeout
	}
}

// NewTransport wraps an existing connection. This is mostly useful for
// tests; normal callers use Dial.
func NewTransport(conn net.Conn, options ...TransportOptionFunc) *Transport {
	t := &Transport{
		conn: conn,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Dial establishes a connection to the given host and port, bounded by the
// connect timeout.
func Dial(
	host string,
	port int,
	connectTimeout time.Duration,
	options ...TransportOptionFunc,
) (*Transport, error) {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", address, connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return NewTransport(conn, options...), nil
}

// IsOpen returns whether the transport is open for exchanges
func (t *Transport) IsOpen() bool {
	return !t.closed.Load()
}

// Close shuts down the underlying connection. It is safe to call multiple
// times; calls after the first return nil.
func (t *Transport) Close() error {
	var err error
	t.onceClose.Do(func() {
		t.closed.Store(true)
		err = t.conn.Close()
	})
	return err
}

// LocalAddr returns the local address of the underlying connection
func (t *Transport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

// RemoteAddr returns the remote address of the underlying connection
func (t *Transport) RemoteAddr() net.Addr {
	return t.conn.RemoteAddr()
}

// Send writes an envelope to the connection. A mutex makes sure only one
// caller can send at a time.
func (t *Transport) Send(env *Envelope) error {
	if !t.IsOpen() {
		return ErrTransportClosed
	}
	if len(env.Payload) > MaxPayloadLength {
		return fmt.Errorf(
			"%w: %d bytes",
			ErrPayloadTooLarge,
			len(env.Payload),
		)
	}
	t.sendMutex.Lock()
	defer t.sendMutex.Unlock()
	if t.requestTimeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(t.requestTimeout)); err != nil {
			return err
		}
	}
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.BigEndian, env.EnvelopeHeader); err != nil {
		return err
	}
	buf.Write(env.Payload)
	if _, err := t.conn.Write(buf.Bytes()); err != nil {
		return err
	}
	return nil
}

// Receive reads the next envelope from the connection, blocking until a
// complete envelope arrives, the request timeout expires, or the connection
// fails.
func (t *Transport) Receive() (*Envelope, error) {
	if !t.IsOpen() {
		return nil, ErrTransportClosed
	}
	if t.requestTimeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.requestTimeout)); err != nil {
			return nil, err
		}
	}
	header := EnvelopeHeader{}
	if err := binary.Read(t.conn, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	if header.PayloadLength > MaxPayloadLength {
		return nil, fmt.Errorf(
			"%w: %d bytes",
			ErrPayloadTooLarge,
			header.PayloadLength,
		)
	}
	env := &Envelope{
		EnvelopeHeader: header,
		Payload:        make([]byte, header.PayloadLength),
	}
	// We use ReadFull because it guarantees to read the expected number of
	// bytes or return an error
	if _, err := io.ReadFull(t.conn, env.Payload); err != nil {
		return nil, err
	}
	return env, nil
}
