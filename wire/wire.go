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

// Package wire implements the tagged binary record encoding used by the
// graph service wire protocol.
//
// Records are encoded as a sequence of tagged fields: each present field is
// framed by a header carrying its wire type and numeric tag, followed by the
// value in the type's native encoding. Absent fields produce no wire bytes.
// A record's field list is terminated by a stop marker. Decoders skip fields
// with unrecognized tags or mismatched wire types, which is what allows
// schemas to evolve by adding optional fields.
package wire

import (
	"bytes"
	"hash/fnv"
)

// Type identifies the wire encoding of a field value.
type Type int8

const (
	TypeStop   Type = 0
	TypeBool   Type = 2
	TypeByte   Type = 3
	TypeDouble Type = 4
	TypeI16    Type = 6
	TypeI32    Type = 8
	TypeI64    Type = 10
	TypeBytes  Type = 11
	TypeStruct Type = 12
	TypeMap    Type = 13
	TypeSet    Type = 14
	TypeList   Type = 15
)

const (
	// MaxBytesLength is the largest byte string the codec will encode or decode
	MaxBytesLength = 64 * 1024 * 1024

	// MaxListLength is the largest element count the codec will accept in a
	// list, set, or map header
	MaxListLength = 1024 * 1024

	// maxSkipDepth bounds recursion when skipping nested unknown fields
	maxSkipDepth = 64
)

func (t Type) String() string {
	switch t {
	case TypeStop:
		return "stop"
	case TypeBool:
		return "bool"
	case TypeByte:
		return "byte"
	case TypeDouble:
		return "double"
	case TypeI16:
		return "i16"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeBytes:
		return "bytes"
	case TypeStruct:
		return "struct"
	case TypeMap:
		return "map"
	case TypeSet:
		return "set"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// Record is implemented by all wire protocol record types. Write encodes the
// record's present fields, Read populates the record from encoded data, and
// Validate runs schema validation. Write runs validation before encoding and
// Read runs it after decoding.
type Record interface {
	Read(d *Decoder) error
	Write(e *Encoder) error
	Validate() error
}

// EncodeRecord encodes a record to a byte slice.
func EncodeRecord(r Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRecord decodes a record from a byte slice.
func DecodeRecord(data []byte, r Record) error {
	return r.Read(NewDecoder(bytes.NewReader(data)))
}

// HashRecord returns a hash over a record's encoded form. Present fields are
// encoded and absent fields are not, so records that compare equal produce
// identical encodings and therefore identical hashes.
func HashRecord(r Record) uint64 {
	h := fnv.New64a()
	// Writing to a hash cannot fail
	_ = r.Write(NewEncoder(h))
	return h.Sum64()
}
