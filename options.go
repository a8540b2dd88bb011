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
	"log/slog"
	"time"
)

// ClientOptionFunc is a type that represents functions that modify the client config
type ClientOptionFunc func(*Client)

// WithConfig replaces the entire client config. The config is deep-copied,
// so later changes by the caller do not affect the client
func WithConfig(cfg Config) ClientOptionFunc {
	return func(c *Client) {
		c.config = cfg.Clone()
	}
}

// WithAddresses specifies the candidate service endpoints
func WithAddresses(addresses ...HostAddress) ClientOptionFunc {
	return func(c *Client) {
		c.config.Addresses = append([]HostAddress{}, addresses...)
	}
}

// WithCredentials specifies the username and password used to authenticate
func WithCredentials(username string, password string) ClientOptionFunc {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout specifies the timeout for connection establishment and each
// request against an established session
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.config.Timeout = timeout
	}
}

// WithConnectionRetry specifies the connection attempt budget, including
// the first try
func WithConnectionRetry(count int) ClientOptionFunc {
	return func(c *Client) {
		c.config.ConnectionRetry = count
	}
}

// WithExecutionRetry specifies the execution attempt budget, including the
// first try
func WithExecutionRetry(count int) ClientOptionFunc {
	return func(c *Client) {
		c.config.ExecutionRetry = count
	}
}

// WithRetryBackoff specifies the delay before a second attempt. Zero
// disables waiting between attempts
func WithRetryBackoff(backoff time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.config.RetryBackoff = backoff
	}
}

// WithLogger specifies a custom logger. If none is provided, slog.Default()
// is used
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}
