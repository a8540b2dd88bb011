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
	"time"

	"github.com/wfystx/gnebula/graph"
)

// ResultSet holds the payload of a successful query.
type ResultSet struct {
	columnNames []string
	rows        []graph.RowValue
	spaceName   string
	latency     time.Duration
}

func newResultSet(resp *graph.ExecuteResponse) *ResultSet {
	rs := &ResultSet{
		rows:      resp.Rows.Value(),
		spaceName: string(resp.SpaceName.Value()),
		latency:   time.Duration(resp.LatencyUs.Value()) * time.Microsecond,
	}
	for _, name := range resp.ColumnNames.Value() {
		rs.columnNames = append(rs.columnNames, string(name))
	}
	return rs
}

// ColumnNames returns the result's column names in order.
func (r *ResultSet) ColumnNames() []string {
	return r.columnNames
}

// Rows returns the result's rows in order.
func (r *ResultSet) Rows() []graph.RowValue {
	return r.rows
}

// RowCount returns the number of rows in the result.
func (r *ResultSet) RowCount() int {
	return len(r.rows)
}

// SpaceName returns the space the statement ran in, when the server
// reported one.
func (r *ResultSet) SpaceName() string {
	return r.spaceName
}

// Latency returns the server-reported execution time.
func (r *ResultSet) Latency() time.Duration {
	return r.latency
}
