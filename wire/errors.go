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

package wire

import (
	"errors"
	"fmt"
)

// ErrUnknownWireType is returned when a decoder encounters a field of a wire
// type it cannot skip
var ErrUnknownWireType = errors.New("unknown wire type")

// ErrSkipDepthExceeded is returned when skipping a field would require
// recursing deeper than the codec allows
var ErrSkipDepthExceeded = errors.New("maximum skip depth exceeded")

// DecodeError represents malformed or truncated wire data encountered while
// decoding
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
