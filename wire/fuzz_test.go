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
	"bytes"
	"testing"
)

func FuzzSkipStruct(f *testing.F) {
	// Seed corpus with valid field encodings
	f.Add([]byte{0x00})                                     // empty record
	f.Add([]byte{0x08, 0x00, 0x01, 0, 0, 0, 42, 0x00})      // i32 field
	f.Add([]byte{0x0b, 0x00, 0x02, 0, 0, 0, 1, 0xff, 0x00}) // bytes field
	f.Add([]byte{0x0c, 0x00, 0x03, 0x00, 0x00})             // nested record
	f.Add([]byte{0x0f, 0x00, 0x04, 0x08, 0, 0, 0, 0, 0x00}) // empty list

	f.Fuzz(func(t *testing.T, data []byte) {
		dec := NewDecoder(bytes.NewReader(data))
		// Should not panic and should never hang on malformed input
		_ = dec.Skip(TypeStruct)
	})
}
