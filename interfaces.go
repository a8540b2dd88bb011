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
	"context"

	"github.com/wfystx/gnebula/graph"
)

// The interfaces below scope the client surface by capability so a
// concrete client implements exactly what it supports, and callers can
// depend on the narrowest contract they need.

// Connector establishes and tears down an authenticated session.
type Connector interface {
	Connect(ctx context.Context) error
	IsConnected() bool
	Close() error
}

// Executor runs statements against an established session.
type Executor interface {
	Execute(ctx context.Context, statement string) (graph.ErrorCode, error)
	ExecuteQuery(ctx context.Context, statement string) (*ResultSet, error)
	SwitchSpace(ctx context.Context, space string) error
}

// KVStore is the key/value surface of the storage service. No client in
// this module implements it yet.
type KVStore interface {
	Put(ctx context.Context, space string, key []byte, value []byte) error
	Get(ctx context.Context, space string, key []byte) ([]byte, error)
	Remove(ctx context.Context, space string, key []byte) error
}

// MetaResolver resolves cluster metadata. No client in this module
// implements it yet.
type MetaResolver interface {
	SpaceID(ctx context.Context, space string) (int32, error)
	PartsAlloc(ctx context.Context, space string) (map[int32][]HostAddress, error)
}

var (
	_ Connector = (*Client)(nil)
	_ Executor  = (*Client)(nil)
)
