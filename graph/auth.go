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
	"fmt"
	"strings"

	"github.com/wfystx/gnebula/wire"
)

const (
	authRequestFieldUsername int16 = 1
	authRequestFieldPassword int16 = 2

	authResponseFieldErrorCode int16 = 1
	authResponseFieldErrorMsg  int16 = 2
	authResponseFieldSessionID int16 = 3

	signoutRequestFieldSessionID int16 = 1
)

// AuthRequest asks the service to open a session for the given credentials.
type AuthRequest struct {
	Username wire.Optional[[]byte]
	Password wire.Optional[[]byte]
}

func (r *AuthRequest) Read(d *wire.Decoder) error {
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
		case tag == authRequestFieldUsername && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.Username.Set(v)
		case tag == authRequestFieldPassword && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.Password.Set(v)
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

func (r *AuthRequest) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("AuthRequest"); err != nil {
		return err
	}
	if v, ok := r.Username.Get(); ok {
		if err := e.WriteFieldBegin(authRequestFieldUsername, wire.TypeBytes); err != nil {
			return err
		}
		if err := e.WriteBytes(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.Password.Get(); ok {
		if err := e.WriteFieldBegin(authRequestFieldPassword, wire.TypeBytes); err != nil {
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
func (r *AuthRequest) Validate() error {
	return nil
}

// DeepCopy returns a copy sharing no buffers with the source.
func (r *AuthRequest) DeepCopy() *AuthRequest {
	if r == nil {
		return nil
	}
	return &AuthRequest{
		Username: wire.CopyBytes(r.Username),
		Password: wire.CopyBytes(r.Password),
	}
}

// Equal reports whether both records hold the same fields with the same
// presence. An unset field is not equal to a field set to its zero value.
func (r *AuthRequest) Equal(other *AuthRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return wire.EqualBytes(r.Username, other.Username) &&
		wire.EqualBytes(r.Password, other.Password)
}

// Compare orders records field by field in tag order, comparing presence
// before value. The result is zero exactly when Equal returns true.
func (r *AuthRequest) Compare(other *AuthRequest) int {
	if r == other {
		return 0
	}
	if r == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	if c := wire.CompareBytes(r.Username, other.Username); c != 0 {
		return c
	}
	return wire.CompareBytes(r.Password, other.Password)
}

// Hash returns a hash consistent with Equal.
func (r *AuthRequest) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *AuthRequest) String() string {
	var sb strings.Builder
	sb.WriteString("AuthRequest(")
	first := true
	if v, ok := r.Username.Get(); ok {
		sb.WriteString("username:")
		sb.WriteString(wire.FormatBytes(v))
		first = false
	}
	if v, ok := r.Password.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString("password:")
		sb.WriteString(wire.FormatBytes(v))
	}
	sb.WriteString(")")
	return sb.String()
}

// AuthResponse reports the outcome of an authentication attempt. On success
// it carries the session identifier all later calls must present.
type AuthResponse struct {
	ErrorCode wire.Optional[ErrorCode]
	ErrorMsg  wire.Optional[[]byte]
	SessionID wire.Optional[int64]
}

func (r *AuthResponse) Read(d *wire.Decoder) error {
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
		case tag == authResponseFieldErrorCode && fieldType == wire.TypeI32:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			r.ErrorCode.Set(ErrorCode(v))
		case tag == authResponseFieldErrorMsg && fieldType == wire.TypeBytes:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			r.ErrorMsg.Set(v)
		case tag == authResponseFieldSessionID && fieldType == wire.TypeI64:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			r.SessionID.Set(v)
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

func (r *AuthResponse) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("AuthResponse"); err != nil {
		return err
	}
	if v, ok := r.ErrorCode.Get(); ok {
		if err := e.WriteFieldBegin(authResponseFieldErrorCode, wire.TypeI32); err != nil {
			return err
		}
		if err := e.WriteI32(int32(v)); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.ErrorMsg.Get(); ok {
		if err := e.WriteFieldBegin(authResponseFieldErrorMsg, wire.TypeBytes); err != nil {
			return err
		}
		if err := e.WriteBytes(v); err != nil {
			return err
		}
		if err := e.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if v, ok := r.SessionID.Get(); ok {
		if err := e.WriteFieldBegin(authResponseFieldSessionID, wire.TypeI64); err != nil {
			return err
		}
		if err := e.WriteI64(v); err != nil {
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
func (r *AuthResponse) Validate() error {
	return nil
}

// DeepCopy returns a copy sharing no buffers with the source.
func (r *AuthResponse) DeepCopy() *AuthResponse {
	if r == nil {
		return nil
	}
	return &AuthResponse{
		ErrorCode: r.ErrorCode,
		ErrorMsg:  wire.CopyBytes(r.ErrorMsg),
		SessionID: r.SessionID,
	}
}

// Equal reports whether both records hold the same fields with the same
// presence.
func (r *AuthResponse) Equal(other *AuthResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return wire.EqualScalar(r.ErrorCode, other.ErrorCode) &&
		wire.EqualBytes(r.ErrorMsg, other.ErrorMsg) &&
		wire.EqualScalar(r.SessionID, other.SessionID)
}

// Compare orders records field by field in tag order, comparing presence
// before value.
func (r *AuthResponse) Compare(other *AuthResponse) int {
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
	if c := wire.CompareBytes(r.ErrorMsg, other.ErrorMsg); c != 0 {
		return c
	}
	return wire.CompareScalar(r.SessionID, other.SessionID)
}

// Hash returns a hash consistent with Equal.
func (r *AuthResponse) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *AuthResponse) String() string {
	var sb strings.Builder
	sb.WriteString("AuthResponse(")
	first := true
	if v, ok := r.ErrorCode.Get(); ok {
		fmt.Fprintf(&sb, "error_code:%d", int32(v))
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
	if v, ok := r.SessionID.Get(); ok {
		if !first {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "session_id:%d", v)
	}
	sb.WriteString(")")
	return sb.String()
}

// SignoutRequest ends a session. Signout is one-way: the service sends no
// response.
type SignoutRequest struct {
	SessionID wire.Optional[int64]
}

func (r *SignoutRequest) Read(d *wire.Decoder) error {
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
		case tag == signoutRequestFieldSessionID && fieldType == wire.TypeI64:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			r.SessionID.Set(v)
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

func (r *SignoutRequest) Write(e *wire.Encoder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := e.WriteStructBegin("SignoutRequest"); err != nil {
		return err
	}
	if v, ok := r.SessionID.Get(); ok {
		if err := e.WriteFieldBegin(signoutRequestFieldSessionID, wire.TypeI64); err != nil {
			return err
		}
		if err := e.WriteI64(v); err != nil {
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
func (r *SignoutRequest) Validate() error {
	return nil
}

// DeepCopy returns a copy of the record.
func (r *SignoutRequest) DeepCopy() *SignoutRequest {
	if r == nil {
		return nil
	}
	return &SignoutRequest{
		SessionID: r.SessionID,
	}
}

// Equal reports whether both records hold the same fields with the same
// presence.
func (r *SignoutRequest) Equal(other *SignoutRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return wire.EqualScalar(r.SessionID, other.SessionID)
}

// Compare orders records by presence, then value.
func (r *SignoutRequest) Compare(other *SignoutRequest) int {
	if r == other {
		return 0
	}
	if r == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	return wire.CompareScalar(r.SessionID, other.SessionID)
}

// Hash returns a hash consistent with Equal.
func (r *SignoutRequest) Hash() uint64 {
	return wire.HashRecord(r)
}

func (r *SignoutRequest) String() string {
	var sb strings.Builder
	sb.WriteString("SignoutRequest(")
	if v, ok := r.SessionID.Get(); ok {
		fmt.Fprintf(&sb, "session_id:%d", v)
	}
	sb.WriteString(")")
	return sb.String()
}
