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

// Package graph_mock provides a mock graph service for tests. A Server
// listens on a loopback TCP port and answers framed calls through a
// caller-supplied handler.
package graph_mock

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/wfystx/gnebula/graph"
	"github.com/wfystx/gnebula/transport"
	"github.com/wfystx/gnebula/wire"
)

// HandlerFunc produces the response record for one request. Returning a
// nil record sends no response, which is what one-way operations expect.
// Returning an error drops the connection.
type HandlerFunc func(op uint16, payload []byte) (wire.Record, error)

// Server is a mock graph service bound to a loopback TCP port.
type Server struct {
	listener net.Listener
	handler  HandlerFunc
	wg       sync.WaitGroup

	connsMutex sync.Mutex
	conns      map[net.Conn]struct{}
}

// NewServer starts a mock service answering requests via the given
// handler. Callers must Close the server to release the port and stop
// its goroutines.
func NewServer(handler HandlerFunc) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: listener,
		handler:  handler,
		conns:    map[net.Conn]struct{}{},
	}
	s.wg.Add(1)
	go s.acceptLoop()
	return s, nil
}

// Host returns the listen address's host part.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.listener.Addr().String())
	return host
}

// Port returns the listen address's port.
func (s *Server) Port() int {
	_, portStr, _ := net.SplitHostPort(s.listener.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return port
}

// Close stops the listener, drops any open connections, and waits for
// the server's goroutines to finish.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.connsMutex.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connsMutex.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Listener closed
			return
		}
		s.connsMutex.Lock()
		s.conns[conn] = struct{}{}
		s.connsMutex.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serve(conn)
			s.connsMutex.Lock()
			delete(s.conns, conn)
			s.connsMutex.Unlock()
		}()
	}
}

func (s *Server) serve(conn net.Conn) {
	trans := transport.NewTransport(conn)
	defer trans.Close()
	for {
		env, err := trans.Receive()
		if err != nil {
			return
		}
		resp, err := s.handler(env.GetOperation(), env.Payload)
		if err != nil {
			return
		}
		if resp == nil {
			continue
		}
		payload, err := wire.EncodeRecord(resp)
		if err != nil {
			return
		}
		respEnv := transport.NewEnvelope(env.SeqNo, env.GetOperation(), payload, true)
		if err := trans.Send(respEnv); err != nil {
			return
		}
	}
}

// Script builds a handler for the common happy path: authentication
// succeeds under the given session ID, signout is absorbed silently, and
// execute requests are delegated to exec.
func Script(
	sessionID int64,
	exec func(req *graph.ExecuteRequest) *graph.ExecuteResponse,
) HandlerFunc {
	return func(op uint16, payload []byte) (wire.Record, error) {
		switch op {
		case graph.OpAuthenticate:
			return &graph.AuthResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
				SessionID: wire.OptionalOf(sessionID),
			}, nil
		case graph.OpSignout:
			return nil, nil
		case graph.OpExecute:
			var req graph.ExecuteRequest
			if err := wire.DecodeRecord(payload, &req); err != nil {
				return nil, err
			}
			resp := exec(&req)
			if resp == nil {
				// A typed nil must not reach the interface, the server
				// would treat it as a response to encode
				return nil, nil
			}
			return resp, nil
		default:
			return nil, fmt.Errorf("unexpected operation %d", op)
		}
	}
}

// RejectAuth builds a handler that rejects every authentication attempt
// with the given error code.
func RejectAuth(code graph.ErrorCode, msg string) HandlerFunc {
	return func(op uint16, payload []byte) (wire.Record, error) {
		if op != graph.OpAuthenticate {
			return nil, fmt.Errorf("unexpected operation %d", op)
		}
		return &graph.AuthResponse{
			ErrorCode: wire.OptionalOf(code),
			ErrorMsg:  wire.OptionalOf([]byte(msg)),
		}, nil
	}
}
