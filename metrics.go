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
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// ClientMetrics tracks connection and execution counters for one client.
type ClientMetrics struct {
	set *metrics.Set

	connectAttempts *metrics.Counter
	connectFailures *metrics.Counter
	sessionsOpened  *metrics.Counter
	executes        *metrics.Counter
	executeFailures *metrics.Counter
	queries         *metrics.Counter
	queryFailures   *metrics.Counter
	executeDuration *metrics.Histogram
}

func newClientMetrics() *ClientMetrics {
	set := metrics.NewSet()
	return &ClientMetrics{
		set:             set,
		connectAttempts: set.NewCounter("gnebula_connect_attempts_total"),
		connectFailures: set.NewCounter("gnebula_connect_failures_total"),
		sessionsOpened:  set.NewCounter("gnebula_sessions_opened_total"),
		executes:        set.NewCounter("gnebula_executes_total"),
		executeFailures: set.NewCounter("gnebula_execute_failures_total"),
		queries:         set.NewCounter("gnebula_queries_total"),
		queryFailures:   set.NewCounter("gnebula_query_failures_total"),
		executeDuration: set.NewHistogram("gnebula_execute_duration_seconds"),
	}
}

// ClientStats is a snapshot of the client's counters.
type ClientStats struct {
	ConnectAttempts uint64
	ConnectFailures uint64
	SessionsOpened  uint64
	Executes        uint64
	ExecuteFailures uint64
	Queries         uint64
	QueryFailures   uint64
}

// Stats returns a snapshot of the current counters.
func (m *ClientMetrics) Stats() ClientStats {
	return ClientStats{
		ConnectAttempts: m.connectAttempts.Get(),
		ConnectFailures: m.connectFailures.Get(),
		SessionsOpened:  m.sessionsOpened.Get(),
		Executes:        m.executes.Get(),
		ExecuteFailures: m.executeFailures.Get(),
		Queries:         m.queries.Get(),
		QueryFailures:   m.queryFailures.Get(),
	}
}

// WritePrometheus writes the client's metrics in Prometheus text
// exposition format.
func (m *ClientMetrics) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}
