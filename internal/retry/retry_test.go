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

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wfystx/gnebula/internal/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{Attempts: 3}, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsBudget(t *testing.T) {
	testErr := errors.New("unreachable")
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{Attempts: 5}, func() error {
		calls++
		return testErr
	})
	assert.ErrorIs(t, err, testErr)
	assert.Equal(t, 5, calls)
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{Attempts: 3}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoTerminalErrorShortCircuits(t *testing.T) {
	terminalErr := errors.New("terminal")
	calls := 0
	policy := retry.Policy{
		Attempts: 5,
		Retryable: func(err error) bool {
			return !errors.Is(err, terminalErr)
		},
	}
	err := retry.Do(context.Background(), policy, func() error {
		calls++
		return terminalErr
	})
	assert.ErrorIs(t, err, terminalErr)
	assert.Equal(t, 1, calls)
}

func TestDoNormalizesAttempts(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Policy{Attempts: 0}, func() error {
		calls++
		return errors.New("fail")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoContextCanceledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := retry.Do(ctx, retry.Policy{Attempts: 3}, func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestDoContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	policy := retry.Policy{
		Attempts: 3,
		Backoff:  time.Hour,
	}
	done := make(chan error, 1)
	go func() {
		done <- retry.Do(ctx, policy, func() error {
			calls++
			return errors.New("transient")
		})
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for Do to observe cancellation")
	}
}
