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
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/wfystx/gnebula/wire"
)

const (
	executeRequestFieldSessionID int16 = 1
	executeRequestFieldStatement int16 = 2

	executeResponseFieldErrorCode   int16 = 1
	executeResponseFieldLatencyUs   int16 = 2
	executeResponseFieldErrorMsg    int16 = 3
	executeResponseFieldColumnNames int16 = 4
	executeResponseFieldRows        int16 = 5
	executeResponseFieldSpaceName   int16 = 6
)

// ExecuteRequest runs a statement within an established session.
type ExecuteRequest struct {
	SessionID wire.Optional[int64]
	Statement wire.Optional[[]byte]
}

func (r *ExecuteRequest) Read(d *wire.Decoder) error {
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
		case tag == executeRequestFieldSessionID && fieldType == wire.TypeI64:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			r.SessionID.Set(v)
		case tag == executeRequestFieldStatement && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.Statement.Set(v)
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

func (r *ExecuteRequest) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("ExecuteRequest"); err != nil {
		return err
	}
	if v, ok := r.SessionID.Get(); ok {
		if err := e.WriteFieldBegin(executeRequestFieldSessionID, wire.TypeI64); err != nil {
			return err
		}
		if err := e.WriteI64(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.Statement.Get(); ok {
		if err := e.WriteFieldBegin(executeRequestFieldStatement, wire.TypeBytes); err != nil {
			return err
		}
		if err := e.WriteBytes(v); err != nil {
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
func (r *ExecuteRequest) Validate() error {
	return nil
}

// DeepCopy returns a copy sharing no buffers with the source.
func (r *ExecuteRequest) DeepCopy() *ExecuteRequest {
	if r == nil {
		return nil
	}
	return &ExecuteRequest{
		SessionID: r.SessionID,
		Statement: wire.CopyBytes(r.Statement),
	}
}

// Equal reports whether both records hold the same fields with the same
// presence.
func (r *ExecuteRequest) Equal(other *ExecuteRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return wire.EqualScalar(r.SessionID, other.SessionID) &&
		wire.EqualBytes(r.Statement, other.Statement)
}

// Compare orders records field by field in tag order, comparing presence
// before value.
func (r *ExecuteRequest) Compare(other *ExecuteRequest) int {
	if r == other {
		return 0
	}
	if r == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	if c := wire.CompareScalar(r.SessionID, other.SessionID); c != 0 {
		return c
	}
	return wire.CompareBytes(r.Statement, other.Statement)
}

// Hash returns a hash consistent with Equal.
func (r *ExecuteRequest) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *ExecuteRequest) String() string {
	var sb strings.Builder
	sb.WriteString("ExecuteRequest(")
	first := true
	if v, ok := r.SessionID.Get(); ok {
		fmt.Fprintf(&sb, "session_id:%d", v)
		first = false
	}
	if v, ok := r.Statement.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("statement:")
		sb.WriteString(wire.FormatBytes(v))
	}
	sb.WriteString(")")
	return sb.String()
}

// ExecuteResponse reports the outcome of a statement. Query statements also
// carry the result table: column names plus zero or more rows. The service
// reports its own processing latency and the space the session ends up in.
type ExecuteResponse struct {
	ErrorCode   wire.Optional[ErrorCode]
	LatencyUs   wire.Optional[int32]
	ErrorMsg    wire.Optional[[]byte]
	ColumnNames wire.Optional[[][]byte]
	Rows        wire.Optional[[]RowValue]
	SpaceName   wire.Optional[[]byte]
}

func (r *ExecuteResponse) Read(d *wire.Decoder) error {
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
		case tag == executeResponseFieldErrorCode && fieldType == wire.TypeI32:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			r.ErrorCode.Set(ErrorCode(v))
		case tag == executeResponseFieldLatencyUs && fieldType == wire.TypeI32:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			r.LatencyUs.Set(v)
		case tag == executeResponseFieldErrorMsg && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.ErrorMsg.Set(v)
		case tag == executeResponseFieldColumnNames && fieldType == wire.TypeList:
			elemType, size, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			names := make([][]byte, 0, size)
			for i := 0; i < size; i++ {
				if elemType != wire.TypeBytes {
					if err := d.Skip(elemType); err != nil {
						return err
					}
					continue
				}
				name, err := d.ReadBytes()
				if err != nil {
					return err
				}
				names = append(names, name)
			}
			if err := d.ReadListEnd(); err != nil {
				return err
			}
			r.ColumnNames.Set(names)
		case tag == executeResponseFieldRows && fieldType == wire.TypeList:
			elemType, size, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			rows := make([]RowValue, 0, size)
			for i := 0; i < size; i++ {
				if elemType != wire.TypeStruct {
					if err := d.Skip(elemType); err != nil {
						return err
					}
					continue
				}
				var row RowValue
				if err := row.Read(d); err != nil {
					return err
				}
				rows = append(rows, row)
			}
			if err := d.ReadListEnd(); err != nil {
				return err
			}
			r.Rows.Set(rows)
		case tag == executeResponseFieldSpaceName && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.SpaceName.Set(v)
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

func (r *ExecuteResponse) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("ExecuteResponse"); err != nil {
		return err
	}
	if v, ok := r.ErrorCode.Get(); ok {
		if err := e.WriteFieldBegin(executeResponseFieldErrorCode, wire.TypeI32); err != nil {
			return err
		}
		if err := e.WriteI32(int32(v)); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.LatencyUs.Get(); ok {
		if err := e.WriteFieldBegin(executeResponseFieldLatencyUs, wire.TypeI32); err != nil {
			return err
		}
		if err := e.WriteI32(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.ErrorMsg.Get(); ok {
		if err := e.WriteFieldBegin(executeResponseFieldErrorMsg, wire.TypeBytes); err != nil {
			return err
		}
		if err := e.WriteBytes(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if names, ok := r.ColumnNames.Get(); ok {
		if err := e.WriteFieldBegin(executeResponseFieldColumnNames, wire.TypeList); err != nil {
			return err
		}
		if err := e.WriteListBegin(wire.TypeBytes, len(names)); err != nil {
			return err
		}
		for _, name := range names {
			if err := e.WriteBytes(name); err != nil {
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
	if rows, ok := r.Rows.Get(); ok {
		if err := e.WriteFieldBegin(executeResponseFieldRows, wire.TypeList); err != nil {
			return err
		}
		if err := e.WriteListBegin(wire.TypeStruct, len(rows)); err != nil {
			return err
		}
		for i := range rows {
			if err := rows[i].Write(e); err != nil {
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
	if v, ok := r.SpaceName.Get(); ok {
		if err := e.WriteFieldBegin(executeResponseFieldSpaceName, wire.TypeBytes); err != nil {
			return err
		}
		if err := e.WriteBytes(v); err != nil {
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
func (r *ExecuteResponse) Validate() error {
	return nil
}

// DeepCopy returns a copy sharing no buffers with the source.
func (r *ExecuteResponse) DeepCopy() *ExecuteResponse {
	if r == nil {
		return nil
	}
	ret := &ExecuteResponse{
		ErrorCode: r.ErrorCode,
		LatencyUs: r.LatencyUs,
		ErrorMsg:  wire.CopyBytes(r.ErrorMsg),
		SpaceName: wire.CopyBytes(r.SpaceName),
	}
	if names, ok := r.ColumnNames.Get(); ok {
		namesCopy := make([][]byte, len(names))
		for i := range names {
			namesCopy[i] = bytes.Clone(names[i])
		}
		ret.ColumnNames.Set(namesCopy)
	}
	if rows, ok := r.Rows.Get(); ok {
		rowsCopy := make([]RowValue, len(rows))
		for i := range rows {
			rowsCopy[i] = *rows[i].DeepCopy()
		}
		ret.Rows.Set(rowsCopy)
	}
	return ret
}

// Equal reports whether both records hold the same fields with the same
// presence.
func (r *ExecuteResponse) Equal(other *ExecuteResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return wire.EqualScalar(r.ErrorCode, other.ErrorCode) &&
		wire.EqualScalar(r.LatencyUs, other.LatencyUs) &&
		wire.EqualBytes(r.ErrorMsg, other.ErrorMsg) &&
		equalBytesList(r.ColumnNames, other.ColumnNames) &&
		equalRowValueList(r.Rows, other.Rows) &&
		wire.EqualBytes(r.SpaceName, other.SpaceName)
}

// Compare orders records field by field in tag order, comparing presence
// before value.
func (r *ExecuteResponse) Compare(other *ExecuteResponse) int {
	if r == other {
		return 0
	}
	if r == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	if c := wire.CompareScalar(r.ErrorCode, other.ErrorCode); c != 0 {
		return c
	}
	if c := wire.CompareScalar(r.LatencyUs, other.LatencyUs); c != 0 {
		return c
	}
	if c := wire.CompareBytes(r.ErrorMsg, other.ErrorMsg); c != 0 {
		return c
	}
	if c := compareBytesList(r.ColumnNames, other.ColumnNames); c != 0 {
		return c
	}
	if c := compareRowValueList(r.Rows, other.Rows); c != 0 {
		return c
	}
	return wire.CompareBytes(r.SpaceName, other.SpaceName)
}

// Hash returns a hash consistent with Equal.
func (r *ExecuteResponse) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *ExecuteResponse) String() string {
	var sb strings.Builder
	sb.WriteString("ExecuteResponse(")
	first := true
	if v, ok := r.ErrorCode.Get(); ok {
		fmt.Fprintf(&sb, "error_code:%d", int32(v))
		first = false
	}
	if v, ok := r.LatencyUs.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "latency_us:%d", v)
		first = false
	}
	if v, ok := r.ErrorMsg.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("error_msg:")
		sb.WriteString(wire.FormatBytes(v))
		first = false
	}
	if names, ok := r.ColumnNames.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("column_names:[")
		for i, name := range names {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(wire.FormatBytes(name))
		}
		sb.WriteString("]")
		first = false
	}
	if rows, ok := r.Rows.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("rows:[")
		for i := range rows {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(rows[i].String())
		}
		sb.WriteString("]")
		first = false
	}
	if v, ok := r.SpaceName.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("space_name:")
		sb.WriteString(wire.FormatBytes(v))
	}
	sb.WriteString(")")
	return sb.String()
}

func equalBytesList(a, b wire.Optional[[][]byte]) bool {
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
		if !bytes.Equal(av[i], bv[i]) {
			return false
		}
	}
	return true
}

func compareBytesList(a, b wire.Optional[[][]byte]) int {
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
		if c := bytes.Compare(av[i], bv[i]); c != 0 {
			return c
		}
	}
	return 0
}

func equalRowValueList(a, b wire.Optional[[]RowValue]) bool {
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

func compareRowValueList(a, b wire.Optional[[]RowValue]) int {
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
