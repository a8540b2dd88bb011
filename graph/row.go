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

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/wfystx/gnebula/wire"
)

const (
	columnValueFieldInteger   int16 = 1
	columnValueFieldStr       int16 = 2
	columnValueFieldID        int16 = 3
	columnValueFieldTimestamp int16 = 4
	columnValueFieldBoolean   int16 = 5

	rowValueFieldColumns int16 = 1
)

// ColumnValue is a union-style record holding a single cell of a result
// row. A valid value has exactly one field present; which one determines the
// cell's type.
type ColumnValue struct {
	Integer   wire.Optional[int64]
	Str       wire.Optional[[]byte]
	ID        wire.Optional[int64]
	Timestamp wire.Optional[int64]
	Boolean   wire.Optional[bool]
}

// NewIntegerColumn returns a ColumnValue holding an integer cell.
func NewIntegerColumn(v int64) ColumnValue {
	return ColumnValue{Integer: wire.OptionalOf(v)}
}

// NewStrColumn returns a ColumnValue holding a byte-string cell.
func NewStrColumn(v []byte) ColumnValue {
	return ColumnValue{Str: wire.OptionalOf(v)}
}

// NewIDColumn returns a ColumnValue holding a vertex or edge identifier.
func NewIDColumn(v int64) ColumnValue {
	return ColumnValue{ID: wire.OptionalOf(v)}
}

// NewTimestampColumn returns a ColumnValue holding a timestamp cell.
func NewTimestampColumn(v int64) ColumnValue {
	return ColumnValue{Timestamp: wire.OptionalOf(v)}
}

// NewBoolColumn returns a ColumnValue holding a boolean cell.
func NewBoolColumn(v bool) ColumnValue {
	return ColumnValue{Boolean: wire.OptionalOf(v)}
}

func (r *ColumnValue) Read(d *wire.Decoder) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	for {
		fieldType, tag, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldType == wire.TypeStop {
			break
		}
		switch {
		case tag == columnValueFieldInteger && fieldType == wire.TypeI64:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			r.Integer.Set(v)
		case tag == columnValueFieldStr && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.Str.Set(v)
		case tag == columnValueFieldID && fieldType == wire.TypeI64:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			r.ID.Set(v)
		case tag == columnValueFieldTimestamp && fieldType == wire.TypeI64:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			r.Timestamp.Set(v)
		case tag == columnValueFieldBoolean && fieldType == wire.TypeBool:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			r.Boolean.Set(v)
		default:
			// Unknown tag or mismatched wire type
			if err := d.Skip(fieldType); err != nil {
				return err
			}
		}
		if err := d.ReadFieldEnd(); err != nil {
			return err
		}
	}
	if err := d.ReadStructEnd(); err != nil {
		return err
	}
	return r.Validate()
}

func (r *ColumnValue) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("ColumnValue"); err != nil {
		return err
	}
	if v, ok := r.Integer.Get(); ok {
		if err := e.WriteFieldBegin(columnValueFieldInteger, wire.TypeI64); err != nil {
			return err
		}
		if err := e.WriteI64(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.Str.Get(); ok {
		if err := e.WriteFieldBegin(columnValueFieldStr, wire.TypeBytes); err != nil {
			return err
		}
		if err := e.WriteBytes(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.ID.Get(); ok {
		if err := e.WriteFieldBegin(columnValueFieldID, wire.TypeI64); err != nil {
			return err
		}
		if err := e.WriteI64(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.Timestamp.Get(); ok {
		if err := e.WriteFieldBegin(columnValueFieldTimestamp, wire.TypeI64); err != nil {
			return err
		}
		if err := e.WriteI64(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.Boolean.Get(); ok {
		if err := e.WriteFieldBegin(columnValueFieldBoolean, wire.TypeBool); err != nil {
			return err
		}
		if err := e.WriteBool(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if err := e.WriteFieldStop(); err != nil {
		return err
	}
	return e.WriteStructEnd()
}

// Validate runs schema validation. The schema declares no required fields,
// so there is currently nothing to check.
func (r *ColumnValue) Validate() error {
	return nil
}

// DeepCopy returns a copy sharing no buffers with the source.
func (r *ColumnValue) DeepCopy() *ColumnValue {
	if r == nil {
		return nil
	}
	return &ColumnValue{
		Integer:   r.Integer,
		Str:       wire.CopyBytes(r.Str),
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Boolean:   r.Boolean,
	}
}

// Equal reports whether both records hold the same fields with the same
// presence.
func (r *ColumnValue) Equal(other *ColumnValue) bool {
	if r == nil || other == nil {
		return r == other
	}
	return wire.EqualScalar(r.Integer, other.Integer) &&
		wire.EqualBytes(r.Str, other.Str) &&
		wire.EqualScalar(r.ID, other.ID) &&
		wire.EqualScalar(r.Timestamp, other.Timestamp) &&
		wire.EqualScalar(r.Boolean, other.Boolean)
}

// Compare orders records field by field in tag order, comparing presence
// before value.
func (r *ColumnValue) Compare(other *ColumnValue) int {
	if r == other {
		return 0
	}
	if r == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	if c := wire.CompareScalar(r.Integer, other.Integer); c != 0 {
		return c
	}
	if c := wire.CompareBytes(r.Str, other.Str); c != 0 {
		return c
	}
	if c := wire.CompareScalar(r.ID, other.ID); c != 0 {
		return c
	}
	if c := wire.CompareScalar(r.Timestamp, other.Timestamp); c != 0 {
		return c
	}
	return compareOptionalBool(r.Boolean, other.Boolean)
}

// Hash returns a hash consistent with Equal.
func (r *ColumnValue) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *ColumnValue) String() string {
	var sb strings.Builder
	sb.WriteString("ColumnValue(")
	first := true
	if v, ok := r.Integer.Get(); ok {
		fmt.Fprintf(&sb, "integer:%d", v)
		first = false
	}
	if v, ok := r.Str.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("str:")
		sb.WriteString(wire.FormatBytes(v))
		first = false
	}
	if v, ok := r.ID.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "id:%d", v)
		first = false
	}
	if v, ok := r.Timestamp.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "timestamp:%d", v)
		first = false
	}
	if v, ok := r.Boolean.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "boolean:%t", v)
	}
	sb.WriteString(")")
	return sb.String()
}

// compareOptionalBool orders optional booleans with absent before present
// and false before true
func compareOptionalBool(a, b wire.Optional[bool]) int {
	boolToInt := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	if a.IsSet() != b.IsSet() {
		if a.IsSet() {
			return 1
		}
		return -1
	}
	if !a.IsSet() {
		return 0
	}
	return cmp.Compare(boolToInt(a.Value()), boolToInt(b.Value()))
}

// RowValue is a single result row: an ordered list of column cells.
type RowValue struct {
	Columns wire.Optional[[]ColumnValue]
}

func (r *RowValue) Read(d *wire.Decoder) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	for {
		fieldType, tag, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldType == wire.TypeStop {
			break
		}
		switch {
		case tag == rowValueFieldColumns && fieldType == wire.TypeList:
			elemType, size, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			columns := make([]ColumnValue, 0, size)
			for i := 0; i < size; i++ {
				if elemType != wire.TypeStruct {
					if err := d.Skip(elemType); err != nil {
						return err
					}
					continue
				}
				var column ColumnValue
				if err := column.Read(d); err != nil {
					return err
				}
				columns = append(columns, column)
			}
			if err := d.ReadListEnd(); err != nil {
				return err
			}
			r.Columns.Set(columns)
		default:
			// Unknown tag or mismatched wire type
			if err := d.Skip(fieldType); err != nil {
				return err
			}
		}
		if err := d.ReadFieldEnd(); err != nil {
			return err
		}
	}
	if err := d.ReadStructEnd(); err != nil {
		return err
	}
	return r.Validate()
}

func (r *RowValue) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("RowValue"); err != nil {
		return err
	}
	if columns, ok := r.Columns.Get(); ok {
		if err := e.WriteFieldBegin(rowValueFieldColumns, wire.TypeList); err != nil {
			return err
		}
		if err := e.WriteListBegin(wire.TypeStruct, len(columns)); err != nil {
			return err
		}
		for i := range columns {
			if err := columns[i].Write(e); err != nil {
				return err
			}
		}
		if err := e.WriteListEnd(); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if err := e.WriteFieldStop(); err != nil {
		return err
	}
	return e.WriteStructEnd()
}

// Validate runs schema validation. The schema declares no required fields,
// so there is currently nothing to check.
func (r *RowValue) Validate() error {
	return nil
}

// DeepCopy returns a copy sharing no buffers with the source.
func (r *RowValue) DeepCopy() *RowValue {
	if r == nil {
		return nil
	}
	ret := &RowValue{}
	if columns, ok := r.Columns.Get(); ok {
		columnsCopy := make([]ColumnValue, len(columns))
		for i := range columns {
			columnsCopy[i] = *columns[i].DeepCopy()
		}
		ret.Columns.Set(columnsCopy)
	}
	return ret
}

// Equal reports whether both rows hold equal column lists with the same
// presence.
func (r *RowValue) Equal(other *RowValue) bool {
	if r == nil || other == nil {
		return r == other
	}
	return equalColumnValueList(r.Columns, other.Columns)
}

// Compare orders rows by column list presence, then length, then
// element-wise.
func (r *RowValue) Compare(other *RowValue) int {
	if r == other {
		return 0
	}
	if r == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	return compareColumnValueList(r.Columns, other.Columns)
}

// Hash returns a hash consistent with Equal.
func (r *RowValue) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *RowValue) String() string {
	var sb strings.Builder
	sb.WriteString("RowValue(")
	if columns, ok := r.Columns.Get(); ok {
		sb.WriteString("columns:[")
		for i := range columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(columns[i].String())
		}
		sb.WriteString("]")
	}
	sb.WriteString(")")
	return sb.String()
}

func equalColumnValueList(
	a, b wire.Optional[[]ColumnValue],
) bool {
	if a.IsSet() != b.IsSet() {
		return false
	}
	if !a.IsSet() {
		return true
	}
	av, bv := a.Value(), b.Value()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if !av[i].Equal(&bv[i]) {
			return false
		}
	}
	return true
}

func compareColumnValueList(
	a, b wire.Optional[[]ColumnValue],
) int {
	if a.IsSet() != b.IsSet() {
		if a.IsSet() {
			return 1
		}
		return -1
	}
	if !a.IsSet() {
		return 0
	}
	av, bv := a.Value(), b.Value()
	if len(av) != len(bv) {
		return cmp.Compare(len(av), len(bv))
	}
	for i := range av {
		if c := av[i].Compare(&bv[i]); c != 0 {
			return c
		}
	}
	return 0
}
