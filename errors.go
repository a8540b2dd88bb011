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

package nebula

import (
	"errors"
	"fmt"

	"github.com/wfystx/gnebula/graph"
)

// ErrBadCredentials is returned by Connect when the server explicitly
// rejects the supplied username or password. It is terminal and never
// retried.
var ErrBadCredentials = errors.New("bad username or password")

// ErrFailToConnect is returned by Connect when every attempt in the
// connection retry budget has failed.
var ErrFailToConnect = errors.New("failed to connect")

// ErrNotConnected is returned by calls that require an established
// session when the client has none open.
var ErrNotConnected = errors.New("client is not connected")

// ErrAlreadyConnected is returned by Connect when the client already
// holds an open session.
var ErrAlreadyConnected = errors.New("client is already connected")

// QueryError reports a non-success error code returned by the server for
// a query statement.
type QueryError struct {
	Code graph.ErrorCode
	Msg  string
}

func (e *QueryError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("query failed: %s", e.Code)
	}
	return fmt.Sprintf("query failed: %s: %s", e.Code, e.Msg)
}

// ConnectionError reports a transport or protocol level fault that
// terminated a call against an established session.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
