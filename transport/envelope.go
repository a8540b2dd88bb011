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

const (
	// OperationResponseFlag is set on the operation field of response envelopes
	OperationResponseFlag uint16 = 0x8000

	// MaxPayloadLength bounds the payload carried by a single envelope
	MaxPayloadLength = 64 * 1024 * 1024
)

// EnvelopeHeader precedes every payload on the wire. All fields are encoded
// big-endian.
type EnvelopeHeader struct {
	SeqNo         uint32
	Operation     uint16
	PayloadLength uint32
}

// Envelope pairs an operation with a record-encoded payload. The sequence
// number correlates a response with the request that produced it.
type Envelope struct {
	EnvelopeHeader
	Payload []byte
}

// NewEnvelope creates a new envelope for the given operation and payload.
func NewEnvelope(
	seqNo uint32,
	operation uint16,
	payload []byte,
	isResponse bool,
) *Envelope {
	header := EnvelopeHeader{
		SeqNo:     seqNo,
		Operation: operation,
	}
	if isResponse {
		header.Operation = header.Operation + OperationResponseFlag
	}
	// #nosec G115 -- payload size checked against MaxPayloadLength on send
	header.PayloadLength = uint32(len(payload))
	return &Envelope{
		EnvelopeHeader: header,
		Payload:        payload,
	}
}

// IsRequest returns true if the response flag is not set on the operation
func (e *Envelope) IsRequest() bool {
	return e.Operation < OperationResponseFlag
}

// IsResponse returns true if the response flag is set on the operation
func (e *Envelope) IsResponse() bool {
	return e.Operation >= OperationResponseFlag
}

// GetOperation returns the operation with any response flag stripped
func (e *Envelope) GetOperation() uint16 {
	if e.Operation >= OperationResponseFlag {
		return e.Operation - OperationResponseFlag
	}
	return e.Operation
}
