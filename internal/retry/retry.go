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

// Package retry provides a bounded retry combinator. Which failures are
// worth another attempt is declared up front via a predicate rather than
// decided inside the retried operation.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy controls how Do re-runs an operation.
type Policy struct {
	// Attempts is the total attempt budget, including the first try.
	// Values below one are treated as one.
	Attempts int
	// Backoff is the delay before the second attempt. It doubles after
	// every failed attempt and carries a small random jitter. Zero
	// disables waiting between attempts.
	Backoff time.Duration
	// Retryable reports whether a failure is worth another attempt.
	// A failure it rejects is terminal and returned immediately. A nil
	// Retryable treats every failure as retryable.
	Retryable func(error) bool
}

// Do runs fn up to p.Attempts times and returns nil as soon as one run
// succeeds. It returns early with the offending error when Retryable
// reports a failure terminal, or with the context error when ctx ends
// while waiting between attempts. Once the budget is exhausted the last
// failure is returned.
func Do(ctx context.Context, p Policy, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.Backoff
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && backoff > 0 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := time.Duration(float64(backoff) * (0.9 + 0.2*rand.Float64()))
			timer := time.NewTimer(jitter)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			backoff *= 2
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
