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

package nebula_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	nebula "github.com/wfystx/gnebula"
	"github.com/wfystx/gnebula/graph"
	graph_mock "github.com/wfystx/gnebula/internal/test/graph_mock"
	"github.com/wfystx/gnebula/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const mockSessionID int64 = 10281

// successScript answers every execute with a bare success response.
func successScript() graph_mock.HandlerFunc {
	return graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
			}
		},
	)
}

func newTestClient(
	t *testing.T,
	server *graph_mock.Server,
	options ...nebula.ClientOptionFunc,
) *nebula.Client {
	t.Helper()
	opts := append(
		[]nebula.ClientOptionFunc{
			nebula.WithAddresses(
				nebula.NewHostAddress(server.Host(), server.Port()),
			),
			nebula.WithCredentials("user", "password"),
			nebula.WithTimeout(5 * time.Second),
			nebula.WithRetryBackoff(0),
		},
		options...,
	)
	client, err := nebula.NewClient(opts...)
	require.NoError(t, err)
	return client
}

// deadAddress reserves a loopback port and releases it so connections to
// it are refused.
func deadAddress(t *testing.T) nebula.HostAddress {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	require.NoError(t, listener.Close())
	return nebula.NewHostAddress(host, port)
}

func TestConnectAndClose(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(successScript())
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	assert.True(t, client.IsConnected())
	assert.Equal(t, mockSessionID, client.SessionID())

	require.NoError(t, client.Close())
	assert.False(t, client.IsConnected())
	assert.Equal(t, int64(0), client.SessionID())
	// Close is idempotent
	require.NoError(t, client.Close())
}

func TestConnectAlreadyConnected(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(successScript())
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	assert.ErrorIs(t, client.Connect(context.Background()), nebula.ErrAlreadyConnected)
}

func TestConnectBadCredentialsShortCircuit(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(
		graph_mock.RejectAuth(graph.CodeBadUsernamePassword, "who are you"),
	)
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server, nebula.WithConnectionRetry(5))
	err = client.Connect(context.Background())
	assert.ErrorIs(t, err, nebula.ErrBadCredentials)
	assert.False(t, client.IsConnected())
	// The rejection is terminal, so only one attempt is made
	assert.Equal(t, uint64(1), client.Metrics().Stats().ConnectAttempts)
}

func TestConnectExhaustsRetryBudget(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, err := nebula.NewClient(
		nebula.WithAddresses(deadAddress(t)),
		nebula.WithCredentials("user", "password"),
		nebula.WithTimeout(time.Second),
		nebula.WithConnectionRetry(3),
		nebula.WithRetryBackoff(0),
	)
	require.NoError(t, err)

	err = client.Connect(context.Background())
	assert.ErrorIs(t, err, nebula.ErrFailToConnect)
	assert.False(t, client.IsConnected())
	stats := client.Metrics().Stats()
	assert.Equal(t, uint64(3), stats.ConnectAttempts)
	assert.Equal(t, uint64(3), stats.ConnectFailures)
}

func TestConnectRetriesTransientAuthFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	var attempts atomic.Int32
	handler := func(op uint16, payload []byte) (wire.Record, error) {
		if op != graph.OpAuthenticate {
			return nil, errors.New("unexpected operation")
		}
		if attempts.Add(1) == 1 {
			return &graph.AuthResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSessionInvalid),
				ErrorMsg:  wire.OptionalOf([]byte("not ready")),
			}, nil
		}
		return &graph.AuthResponse{
			ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
			SessionID: wire.OptionalOf(mockSessionID),
		}, nil
	}
	server, err := graph_mock.NewServer(handler)
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server, nebula.WithConnectionRetry(3))
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, uint64(2), client.Metrics().Stats().ConnectAttempts)
}

func TestExecuteMutation(t *testing.T) {
	defer goleak.VerifyNone(t)
	var gotStatement atomic.Value
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			gotStatement.Store(string(req.Statement.Value()))
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	statement := `INSERT VERTEX person(name) VALUES 100:("alice")`
	code, err := client.Execute(context.Background(), statement)
	require.NoError(t, err)
	assert.Equal(t, graph.CodeSucceeded, code)
	assert.Equal(t, statement, gotStatement.Load())
}

func TestExecuteNotConnected(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, err := nebula.NewClient(
		nebula.WithAddresses(nebula.NewHostAddress("127.0.0.1", 9669)),
		nebula.WithCredentials("user", "password"),
	)
	require.NoError(t, err)

	code, err := client.Execute(context.Background(), "YIELD 1")
	assert.ErrorIs(t, err, nebula.ErrNotConnected)
	assert.Equal(t, graph.CodeDisconnected, code)

	_, err = client.ExecuteQuery(context.Background(), "YIELD 1")
	assert.ErrorIs(t, err, nebula.ErrNotConnected)
}

func TestExecuteAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(successScript())
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	require.NoError(t, client.Close())

	_, err = client.Execute(context.Background(), "YIELD 1")
	assert.ErrorIs(t, err, nebula.ErrNotConnected)
}

func TestExecuteAfterSessionDropped(t *testing.T) {
	defer goleak.VerifyNone(t)
	var calls atomic.Int32
	handler := func(op uint16, payload []byte) (wire.Record, error) {
		switch op {
		case graph.OpAuthenticate:
			return &graph.AuthResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
				SessionID: wire.OptionalOf(mockSessionID),
			}, nil
		case graph.OpSignout:
			return nil, nil
		case graph.OpExecute:
			if calls.Add(1) > 1 {
				// Drop the connection under the client
				return nil, errors.New("session dropped")
			}
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
			}, nil
		default:
			return nil, errors.New("unexpected operation")
		}
	}
	server, err := graph_mock.NewServer(handler)
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	code, err := client.Execute(context.Background(), "INSERT VERTEX person() VALUES 1:()")
	require.NoError(t, err)
	require.Equal(t, graph.CodeSucceeded, code)

	// The server drops the session; the identical statement now fails
	// with an RPC-level error instead of reporting success
	code, err = client.Execute(context.Background(), "INSERT VERTEX person() VALUES 1:()")
	require.Error(t, err)
	var connErr *nebula.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, graph.CodeRPCFailure, code)
}

func TestExecuteRetriesTransientExecutionError(t *testing.T) {
	defer goleak.VerifyNone(t)
	var calls atomic.Int32
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			if calls.Add(1) < 3 {
				return &graph.ExecuteResponse{
					ErrorCode: wire.OptionalOf(graph.CodeExecutionError),
					ErrorMsg:  wire.OptionalOf([]byte("leader changed")),
				}
			}
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server, nebula.WithExecutionRetry(3))
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	code, err := client.Execute(context.Background(), "INSERT VERTEX person() VALUES 1:()")
	require.NoError(t, err)
	assert.Equal(t, graph.CodeSucceeded, code)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExecuteReturnsCodeWhenBudgetExhausted(t *testing.T) {
	defer goleak.VerifyNone(t)
	var calls atomic.Int32
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			calls.Add(1)
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeExecutionError),
				ErrorMsg:  wire.OptionalOf([]byte("still unhappy")),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server, nebula.WithExecutionRetry(2))
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	code, err := client.Execute(context.Background(), "INSERT VERTEX person() VALUES 1:()")
	require.NoError(t, err)
	assert.Equal(t, graph.CodeExecutionError, code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestExecuteSemanticErrorNotRetried(t *testing.T) {
	defer goleak.VerifyNone(t)
	var calls atomic.Int32
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			calls.Add(1)
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSyntaxError),
				ErrorMsg:  wire.OptionalOf([]byte("syntax error near 'VALUES'")),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server, nebula.WithExecutionRetry(5))
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	code, err := client.Execute(context.Background(), "INSERT VERTEX bogus")
	require.NoError(t, err)
	assert.Equal(t, graph.CodeSyntaxError, code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteQueryShape(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
				LatencyUs: wire.OptionalOf(int32(1500)),
				ColumnNames: wire.OptionalOf([][]byte{
					[]byte("name"),
					[]byte("age"),
				}),
				Rows: wire.OptionalOf([]graph.RowValue{
					{Columns: wire.OptionalOf([]graph.ColumnValue{
						graph.NewStrColumn([]byte("alice")),
						graph.NewIntegerColumn(30),
					})},
					{Columns: wire.OptionalOf([]graph.ColumnValue{
						graph.NewStrColumn([]byte("bob")),
						graph.NewIntegerColumn(31),
					})},
				}),
				SpaceName: wire.OptionalOf([]byte("test")),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	rs, err := client.ExecuteQuery(context.Background(), "YIELD 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, rs.ColumnNames())
	require.Equal(t, 2, rs.RowCount())
	assert.Equal(t, "test", rs.SpaceName())
	assert.Equal(t, 1500*time.Microsecond, rs.Latency())
	firstRow := rs.Rows()[0].Columns.Value()
	require.Len(t, firstRow, 2)
	assert.Equal(t, []byte("alice"), firstRow[0].Str.Value())
	assert.Equal(t, int64(30), firstRow[1].Integer.Value())
}

func TestExecuteQueryServerError(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSyntaxError),
				ErrorMsg:  wire.OptionalOf([]byte("syntax error near 'YELD'")),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	rs, err := client.ExecuteQuery(context.Background(), "YELD 1")
	require.Error(t, err)
	assert.Nil(t, rs)
	var queryErr *nebula.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, graph.CodeSyntaxError, queryErr.Code)
	assert.Contains(t, queryErr.Error(), "syntax error near 'YELD'")
}

func TestSwitchSpace(t *testing.T) {
	defer goleak.VerifyNone(t)
	var gotStatement atomic.Value
	server, err := graph_mock.NewServer(graph_mock.Script(
		mockSessionID,
		func(req *graph.ExecuteRequest) *graph.ExecuteResponse {
			statement := string(req.Statement.Value())
			gotStatement.Store(statement)
			if strings.HasSuffix(statement, "nowhere") {
				return &graph.ExecuteResponse{
					ErrorCode: wire.OptionalOf(graph.CodeSpaceNotFound),
				}
			}
			return &graph.ExecuteResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
			}
		},
	))
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	require.NoError(t, client.SwitchSpace(context.Background(), "test"))
	assert.Equal(t, "USE test", gotStatement.Load())

	err = client.SwitchSpace(context.Background(), "nowhere")
	var queryErr *nebula.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, graph.CodeSpaceNotFound, queryErr.Code)
}

func TestCloseSendsSignout(t *testing.T) {
	defer goleak.VerifyNone(t)
	signoutSessions := make(chan int64, 1)
	handler := func(op uint16, payload []byte) (wire.Record, error) {
		switch op {
		case graph.OpAuthenticate:
			return &graph.AuthResponse{
				ErrorCode: wire.OptionalOf(graph.CodeSucceeded),
				SessionID: wire.OptionalOf(mockSessionID),
			}, nil
		case graph.OpSignout:
			var req graph.SignoutRequest
			if err := wire.DecodeRecord(payload, &req); err != nil {
				return nil, err
			}
			signoutSessions <- req.SessionID.Value()
			return nil, nil
		default:
			return nil, errors.New("unexpected operation")
		}
	}
	server, err := graph_mock.NewServer(handler)
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	require.NoError(t, client.Close())

	select {
	case sessionID := <-signoutSessions:
		assert.Equal(t, mockSessionID, sessionID)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for signout")
	}
}

func TestClientMetrics(t *testing.T) {
	defer goleak.VerifyNone(t)
	server, err := graph_mock.NewServer(successScript())
	require.NoError(t, err)
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	_, err = client.Execute(context.Background(), "INSERT VERTEX person() VALUES 1:()")
	require.NoError(t, err)
	_, err = client.Execute(context.Background(), "INSERT VERTEX person() VALUES 2:()")
	require.NoError(t, err)
	_, err = client.ExecuteQuery(context.Background(), "YIELD 1")
	require.NoError(t, err)

	stats := client.Metrics().Stats()
	assert.Equal(t, uint64(1), stats.ConnectAttempts)
	assert.Equal(t, uint64(1), stats.SessionsOpened)
	assert.Equal(t, uint64(2), stats.Executes)
	assert.Equal(t, uint64(1), stats.Queries)

	var buf bytes.Buffer
	client.Metrics().WritePrometheus(&buf)
	assert.Contains(t, buf.String(), "gnebula_connect_attempts_total 1")
}
