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
	"fmt"
	"strings"
)

// maxDebugBytes is the number of bytes rendered before FormatBytes truncates
const maxDebugBytes = 128

// FormatBytes renders a byte string as space-separated uppercase hex pairs
// for debug output, truncating with an ellipsis after the first 128 bytes.
func FormatBytes(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	var sb strings.Builder
	n := len(buf)
	truncated := false
	if n > maxDebugBytes {
		n = maxDebugBytes
		truncated = true
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", buf[i])
	}
	if truncated {
		sb.WriteString(" ...")
	}
	return sb.String()
}
