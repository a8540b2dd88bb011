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

package wire_test

import (
	"testing"

	"github.com/wfystx/gnebula/wire"
)

func TestOptionalZeroValueIsAbsent(t *testing.T) {
	var opt wire.Optional[int64]
	if opt.IsSet() {
		t.Fatal("zero-value Optional reports present")
	}
	if opt.Value() != 0 {
		t.Fatalf("absent Optional holds value %d", opt.Value())
	}
}

func TestOptionalSetUnset(t *testing.T) {
	var opt wire.Optional[int64]
	opt.Set(0)
	if !opt.IsSet() {
		t.Fatal("Optional set to zero reports absent")
	}
	opt.Unset()
	if opt.IsSet() {
		t.Fatal("Optional reports present after Unset")
	}
}

func TestUnsetDiffersFromZero(t *testing.T) {
	// A field explicitly set to its zero value is not the same as an
	// unset field
	var unset wire.Optional[int64]
	zero := wire.OptionalOf(int64(0))
	if wire.EqualScalar(unset, zero) {
		t.Fatal("unset compares equal to set-to-zero")
	}
	if wire.CompareScalar(unset, zero) >= 0 {
		t.Fatal("unset does not order before set-to-zero")
	}
}

func TestCompareScalar(t *testing.T) {
	a := wire.OptionalOf(int64(1))
	b := wire.OptionalOf(int64(2))
	if wire.CompareScalar(a, b) >= 0 {
		t.Fatal("1 does not order before 2")
	}
	if wire.CompareScalar(b, a) <= 0 {
		t.Fatal("2 does not order after 1")
	}
	if wire.CompareScalar(a, a) != 0 {
		t.Fatal("value does not compare equal to itself")
	}
	var unsetA, unsetB wire.Optional[int64]
	if wire.CompareScalar(unsetA, unsetB) != 0 {
		t.Fatal("two unset fields do not compare equal")
	}
}

func TestCompareBytes(t *testing.T) {
	a := wire.OptionalOf([]byte("abc"))
	b := wire.OptionalOf([]byte("abd"))
	if wire.CompareBytes(a, b) >= 0 {
		t.Fatal("abc does not order before abd")
	}
	if !wire.EqualBytes(a, wire.OptionalOf([]byte("abc"))) {
		t.Fatal("equal byte strings do not compare equal")
	}
	var unset wire.Optional[[]byte]
	if wire.EqualBytes(a, unset) {
		t.Fatal("present byte string compares equal to unset")
	}
}

func TestCopyBytesDoesNotAlias(t *testing.T) {
	src := wire.OptionalOf([]byte("abc"))
	cp := wire.CopyBytes(src)
	if !wire.EqualBytes(src, cp) {
		t.Fatal("copy does not compare equal to source")
	}
	cp.Value()[0] = 'X'
	if src.Value()[0] != 'a' {
		t.Fatal("mutating copy changed the source buffer")
	}
}

func TestCopyBytesAbsent(t *testing.T) {
	var src wire.Optional[[]byte]
	cp := wire.CopyBytes(src)
	if cp.IsSet() {
		t.Fatal("copy of an absent field reports present")
	}
}
