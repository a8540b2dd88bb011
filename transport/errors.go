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

package transport

import "errors"

// ErrTransportClosed is returned when attempting an exchange on a closed
// transport
var ErrTransportClosed = errors.New("transport is closed")

// ErrPayloadTooLarge is returned when an envelope payload exceeds
// MaxPayloadLength
var ErrPayloadTooLarge = errors.New("payload length exceeds maximum")
