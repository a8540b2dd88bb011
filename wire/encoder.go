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
	"encoding/binary"
	"fmt"
	"io"
)

// Encoder writes wire-encoded values to an underlying writer. It is not safe
// for concurrent use.
type Encoder struct {
	w   io.Writer
	buf [8]byte
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteStructBegin marks the start of a record. The name is schema metadata
// only and produces no wire bytes.
func (e *Encoder) WriteStructBegin(name string) error {
	return nil
}

// WriteStructEnd marks the end of a record. It produces no wire bytes.
func (e *Encoder) WriteStructEnd() error {
	return nil
}

// WriteFieldBegin writes a field header: the value's wire type followed by
// the field tag.
func (e *Encoder) WriteFieldBegin(tag int16, fieldType Type) error {
	e.buf[0] = byte(fieldType)
	binary.BigEndian.PutUint16(e.buf[1:3], uint16(tag))
	if _, err := e.w.Write(e.buf[:3]); err != nil {
		return fmt.Errorf("write field header: %w", err)
	}
	return nil
}

// WriteFieldEnd marks the end of a field value. It produces no wire bytes.
func (e *Encoder) WriteFieldEnd() error {
	return nil
}

// WriteFieldStop terminates a record's field list.
func (e *Encoder) WriteFieldStop() error {
	e.buf[0] = byte(TypeStop)
	if _, err := e.w.Write(e.buf[:1]); err != nil {
		return fmt.Errorf("write stop marker: %w", err)
	}
	return nil
}

// WriteBool writes a boolean as a single byte.
func (e *Encoder) WriteBool(v bool) error {
	e.buf[0] = 0
	if v {
		e.buf[0] = 1
	}
	if _, err := e.w.Write(e.buf[:1]); err != nil {
		return fmt.Errorf("write bool: %w", err)
	}
	return nil
}

// WriteI32 writes a signed 32-bit integer in big-endian byte order.
func (e *Encoder) WriteI32(v int32) error {
	binary.BigEndian.PutUint32(e.buf[:4], uint32(v))
	if _, err := e.w.Write(e.buf[:4]); err != nil {
		return fmt.Errorf("write i32: %w", err)
	}
	return nil
}

// WriteI64 writes a signed 64-bit integer in big-endian byte order.
func (e *Encoder) WriteI64(v int64) error {
	binary.BigEndian.PutUint64(e.buf[:8], uint64(v))
	if _, err := e.w.Write(e.buf[:8]); err != nil {
		return fmt.Errorf("write i64: %w", err)
	}
	return nil
}

// WriteBytes writes a length-prefixed byte string. A nil slice is written as
// a zero-length string.
func (e *Encoder) WriteBytes(v []byte) error {
	if len(v) > MaxBytesLength {
		return fmt.Errorf(
			"byte string length %d exceeds maximum %d",
			len(v),
			MaxBytesLength,
		)
	}
	if err := e.WriteI32(int32(len(v))); err != nil {
		return err
	}
	if len(v) > 0 {
		if _, err := e.w.Write(v); err != nil {
			return fmt.Errorf("write bytes: %w", err)
		}
	}
	return nil
}

// WriteListBegin writes a list header: the element wire type followed by the
// element count.
func (e *Encoder) WriteListBegin(elemType Type, size int) error {
	if size > MaxListLength {
		return fmt.Errorf(
			"list length %d exceeds maximum %d",
			size,
			MaxListLength,
		)
	}
	e.buf[0] = byte(elemType)
	binary.BigEndian.PutUint32(e.buf[1:5], uint32(size))
	if _, err := e.w.Write(e.buf[:5]); err != nil {
		return fmt.Errorf("write list header: %w", err)
	}
	return nil
}

// WriteListEnd marks the end of a list. It produces no wire bytes.
func (e *Encoder) WriteListEnd() error {
	return nil
}
