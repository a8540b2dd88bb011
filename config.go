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
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/jinzhu/copier"
)

const (
	// DefaultTimeout bounds connection establishment and each request
	// against an established session.
	DefaultTimeout = 1 * time.Second

	// DefaultConnectionRetry is the default connection attempt budget.
	DefaultConnectionRetry = 3

	// DefaultExecutionRetry is the default execution attempt budget.
	DefaultExecutionRetry = 3

	// DefaultRetryBackoff is the default delay before a second attempt.
	// It doubles after every failed attempt.
	DefaultRetryBackoff = 100 * time.Millisecond
)

// Config holds the client configuration. Zero values are replaced by the
// defaults above when loading from a file; a config assembled by hand
// should start from DefaultConfig.
type Config struct {
	// Addresses lists the candidate service endpoints. Connection
	// attempts pick among them uniformly at random.
	Addresses []HostAddress `yaml:"addresses"`
	// Timeout bounds connection establishment and each request.
	Timeout time.Duration `yaml:"timeout"`
	// ConnectionRetry is the connection attempt budget, including the
	// first try.
	ConnectionRetry int `yaml:"connectionRetry"`
	// ExecutionRetry is the execution attempt budget, including the
	// first try.
	ExecutionRetry int `yaml:"executionRetry"`
	// RetryBackoff is the delay before a second attempt, doubling after
	// every failed attempt. Zero disables waiting between attempts.
	RetryBackoff time.Duration `yaml:"retryBackoff"`
}

// DefaultConfig returns a config populated with default timeouts and
// retry budgets. Addresses must still be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		ConnectionRetry: DefaultConnectionRetry,
		ExecutionRetry:  DefaultExecutionRetry,
		RetryBackoff:    DefaultRetryBackoff,
	}
}

// NewConfigFromFile loads a client config from a YAML file at the given
// path.
func NewConfigFromFile(path string) (*Config, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()
	return NewConfigFromReader(dataFile)
}

// NewConfigFromReader loads a client config in YAML form. Omitted fields
// keep their defaults. The loaded config is not validated; NewClient
// validates before any network I/O.
func NewConfigFromReader(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &c, nil
}

// Validate reports the first configuration error found. Violations are
// caught here before any network I/O happens.
func (c Config) Validate() error {
	if len(c.Addresses) == 0 {
		return errors.New("at least one address is required")
	}
	for _, addr := range c.Addresses {
		if err := addr.Validate(); err != nil {
			return err
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %s", c.Timeout)
	}
	if c.ConnectionRetry <= 0 {
		return fmt.Errorf("connection retry must be positive: %d", c.ConnectionRetry)
	}
	if c.ExecutionRetry <= 0 {
		return fmt.Errorf("execution retry must be positive: %d", c.ExecutionRetry)
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff must not be negative: %s", c.RetryBackoff)
	}
	return nil
}

// Clone returns a deep copy of the config so a running client never
// shares the address slice with its caller.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on invalid input types; both sides are
		// plain structs here
		return c
	}
	return out
}
