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

// Package graph implements the graph service protocol: the record schemas
// exchanged with the query engine and a low-level call client that frames
// them into transport envelopes.
//
// The protocol is request/response. Authenticate opens a session, Execute
// runs a statement within it, and Signout ends it. Every record is encoded
// with the tagged binary format from the wire package.
package graph

const (
	// Operation identifiers carried in envelope headers
	OpAuthenticate uint16 = 1
	OpSignout      uint16 = 2
	OpExecute      uint16 = 3
)
