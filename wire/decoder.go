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

// Decoder reads wire-encoded values from an underlying reader. It is not
// safe for concurrent use.
type Decoder struct {
	r   io.Reader
	buf [8]byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadStructBegin marks the start of a record. It consumes no wire bytes.
func (d *Decoder) ReadStructBegin() error {
	return nil
}

// ReadStructEnd marks the end of a record. It consumes no wire bytes.
func (d *Decoder) ReadStructEnd() error {
	return nil
}

// ReadFieldBegin reads the next field header and returns the field's wire
// type and tag. A wire type of TypeStop marks the end of the record's field
// list; no tag follows the stop marker.
func (d *Decoder) ReadFieldBegin() (Type, int16, error) {
	if _, err := io.ReadFull(d.r, d.buf[:1]); err != nil {
		return 0, 0, &DecodeError{Op: "field type", Err: err}
	}
	fieldType := Type(d.buf[0])
	if fieldType == TypeStop {
		return TypeStop, 0, nil
	}
	if _, err := io.ReadFull(d.r, d.buf[:2]); err != nil {
		return 0, 0, &DecodeError{Op: "field tag", Err: err}
	}
	return fieldType, int16(binary.BigEndian.Uint16(d.buf[:2])), nil
}

// ReadFieldEnd marks the end of a field value. It consumes no wire bytes.
func (d *Decoder) ReadFieldEnd() error {
	return nil
}

// ReadBool reads a single-byte boolean.
func (d *Decoder) ReadBool() (bool, error) {
	if _, err := io.ReadFull(d.r, d.buf[:1]); err != nil {
		return false, &DecodeError{Op: "bool", Err: err}
	}
	return d.buf[0] != 0, nil
}

// ReadI32 reads a signed 32-bit integer in big-endian byte order.
func (d *Decoder) ReadI32() (int32, error) {
	if _, err := io.ReadFull(d.r, d.buf[:4]); err != nil {
		return 0, &DecodeError{Op: "i32", Err: err}
	}
	return int32(binary.BigEndian.Uint32(d.buf[:4])), nil
}

// ReadI64 reads a signed 64-bit integer in big-endian byte order.
func (d *Decoder) ReadI64() (int64, error) {
	if _, err := io.ReadFull(d.r, d.buf[:8]); err != nil {
		return 0, &DecodeError{Op: "i64", Err: err}
	}
	return int64(binary.BigEndian.Uint64(d.buf[:8])), nil
}

// ReadBytes reads a length-prefixed byte string into a freshly allocated
// buffer.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &DecodeError{
			Op:  "bytes",
			Err: fmt.Errorf("negative length %d", n),
		}
	}
	if n > MaxBytesLength {
		return nil, &DecodeError{
			Op:  "bytes",
			Err: fmt.Errorf("length %d exceeds maximum %d", n, MaxBytesLength),
		}
	}
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, &DecodeError{Op: "bytes", Err: err}
	}
	return buf, nil
}

// ReadListBegin reads a list header and returns the element wire type and
// count.
func (d *Decoder) ReadListBegin() (Type, int, error) {
	if _, err := io.ReadFull(d.r, d.buf[:1]); err != nil {
		return 0, 0, &DecodeError{Op: "list element type", Err: err}
	}
	elemType := Type(d.buf[0])
	size, err := d.ReadI32()
	if err != nil {
		return 0, 0, err
	}
	if size < 0 {
		return 0, 0, &DecodeError{
			Op:  "list",
			Err: fmt.Errorf("negative length %d", size),
		}
	}
	if size > MaxListLength {
		return 0, 0, &DecodeError{
			Op:  "list",
			Err: fmt.Errorf("length %d exceeds maximum %d", size, MaxListLength),
		}
	}
	return elemType, int(size), nil
}

// ReadListEnd marks the end of a list. It consumes no wire bytes.
func (d *Decoder) ReadListEnd() error {
	return nil
}

// Skip consumes and discards a value of the given wire type, recursing
// through nested records and containers. Decoders call this for fields with
// unrecognized tags or mismatched wire types so that unknown fields are
// tolerated rather than fatal.
func (d *Decoder) Skip(fieldType Type) error {
	return d.skip(fieldType, maxSkipDepth)
}

func (d *Decoder) skip(fieldType Type, depth int) error {
	if depth <= 0 {
		return ErrSkipDepthExceeded
	}
	switch fieldType {
	case TypeBool, TypeByte:
		_, err := io.ReadFull(d.r, d.buf[:1])
		if err != nil {
			return &DecodeError{Op: "skip " + fieldType.String(), Err: err}
		}
		return nil
	case TypeI16:
		_, err := io.ReadFull(d.r, d.buf[:2])
		if err != nil {
			return &DecodeError{Op: "skip i16", Err: err}
		}
		return nil
	case TypeI32:
		_, err := d.ReadI32()
		return err
	case TypeDouble, TypeI64:
		_, err := io.ReadFull(d.r, d.buf[:8])
		if err != nil {
			return &DecodeError{Op: "skip " + fieldType.String(), Err: err}
		}
		return nil
	case TypeBytes:
		_, err := d.ReadBytes()
		return err
	case TypeStruct:
		if err := d.ReadStructBegin(); err != nil {
			return err
		}
		for {
			elemType, _, err := d.ReadFieldBegin()
			if err != nil {
				return err
			}
			if elemType == TypeStop {
				break
			}
			if err := d.skip(elemType, depth-1); err != nil {
				return err
			}
			if err := d.ReadFieldEnd(); err != nil {
				return err
			}
		}
		return d.ReadStructEnd()
	case TypeList, TypeSet:
		elemType, size, err := d.ReadListBegin()
		if err != nil {
			return err
		}
		for i := 0; i < size; i++ {
			if err := d.skip(elemType, depth-1); err != nil {
				return err
			}
		}
		return d.ReadListEnd()
	case TypeMap:
		if _, err := io.ReadFull(d.r, d.buf[:2]); err != nil {
			return &DecodeError{Op: "map header", Err: err}
		}
		keyType := Type(d.buf[0])
		valType := Type(d.buf[1])
		size, err := d.ReadI32()
		if err != nil {
			return err
		}
		if size < 0 || size > MaxListLength {
			return &DecodeError{
				Op:  "map",
				Err: fmt.Errorf("invalid length %d", size),
			}
		}
		for i := int32(0); i < size; i++ {
			if err := d.skip(keyType, depth-1); err != nil {
				return err
			}
			if err := d.skip(valType, depth-1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownWireType, fieldType)
	}
}
