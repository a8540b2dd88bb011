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
	"fmt"
	"net"
	"strconv"
	"strings"
)

// HostAddress identifies one service endpoint. Addresses are supplied at
// client construction and are immutable afterwards.
type HostAddress struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// NewHostAddress creates a HostAddress from the given host and port.
func NewHostAddress(host string, port int) HostAddress {
	return HostAddress{
		Host: host,
		Port: port,
	}
}

// Validate checks that the host is a syntactically valid IP address or
// hostname and that the port falls inside the valid range.
func (h HostAddress) Validate() error {
	if !isValidHost(h.Host) {
		return fmt.Errorf("invalid host: %q", h.Host)
	}
	if h.Port <= 0 || h.Port >= 65535 {
		return fmt.Errorf("invalid port: %d", h.Port)
	}
	return nil
}

// String returns the address in host:port form.
func (h HostAddress) String() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// isValidHost accepts IP addresses and hostnames made of dot-separated
// labels of letters, digits, and inner hyphens.
func isValidHost(host string) bool {
	if host == "" || len(host) > 253 {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z':
			case c >= 'A' && c <= 'Z':
			case c >= '0' && c <= '9':
			case c == '-':
			default:
				return false
			}
		}
	}
	return true
}
