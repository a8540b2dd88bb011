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

package async

import "errors"

// ErrPoolStopped is returned when submitting to a stopped worker pool.
// A future obtained after the pool stopped completes with this error.
var ErrPoolStopped = errors.New("worker pool is stopped")
