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

package graph

import "fmt"

// ErrorCode is the service-level status carried in every response. Zero is
// the sole success value; all other codes describe a failure kind.
type ErrorCode int32

const (
	CodeSucceeded ErrorCode = 0

	// RPC failures
	CodeDisconnected  ErrorCode = -1
	CodeFailToConnect ErrorCode = -2
	CodeRPCFailure    ErrorCode = -3

	// Authentication failures
	CodeBadUsernamePassword ErrorCode = -4

	// Execution failures
	CodeSessionInvalid ErrorCode = -5
	CodeSessionTimeout ErrorCode = -6
	CodeSyntaxError    ErrorCode = -7
	CodeExecutionError ErrorCode = -8
	CodeStatementEmpty ErrorCode = -9
	CodeSpaceNotFound  ErrorCode = -10
)

// IsSuccess returns whether the code reports success
func (c ErrorCode) IsSuccess() bool {
	return c == CodeSucceeded
}

func (c ErrorCode) String() string {
	switch c {
	case CodeSucceeded:
		return "SUCCEEDED"
	case CodeDisconnected:
		return "E_DISCONNECTED"
	case CodeFailToConnect:
		return "E_FAIL_TO_CONNECT"
	case CodeRPCFailure:
		return "E_RPC_FAILURE"
	case CodeBadUsernamePassword:
		return "E_BAD_USERNAME_PASSWORD"
	case CodeSessionInvalid:
		return "E_SESSION_INVALID"
	case CodeSessionTimeout:
		return "E_SESSION_TIMEOUT"
	case CodeSyntaxError:
		return "E_SYNTAX_ERROR"
	case CodeExecutionError:
		return "E_EXECUTION_ERROR"
	case CodeStatementEmpty:
		return "E_STATEMENT_EMPTY"
	case CodeSpaceNotFound:
		return "E_SPACE_NOT_FOUND"
	default:
		return fmt.Sprintf("E_UNKNOWN(%d)", int32(c))
	}
}
