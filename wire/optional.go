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
	"bytes"
	"cmp"
)

// Optional is an explicit presence wrapper for record fields. The zero value
// is absent. Presence is independent of the held value's zero value: a field
// explicitly set to zero is not the same as an unset field, and the two
// compare unequal.
type Optional[T any] struct {
	value   T
	present bool
}

// OptionalOf returns an Optional holding the given value.
func OptionalOf[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.present
}

// Value returns the held value, or the type's zero value when absent.
func (o Optional[T]) Value() T {
	return o.value
}

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Set stores a value and marks the field present.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.present = true
}

// Unset clears the value and marks the field absent.
func (o *Optional[T]) Unset() {
	var zero T
	o.value = zero
	o.present = false
}

// CompareScalar orders two optional scalar fields. An absent field orders
// before a present one; two absent fields compare equal.
func CompareScalar[T cmp.Ordered](a, b Optional[T]) int {
	if a.present != b.present {
		if a.present {
			return 1
		}
		return -1
	}
	if !a.present {
		return 0
	}
	return cmp.Compare(a.value, b.value)
}

// EqualScalar reports whether two optional scalar fields hold the same
// presence and value.
func EqualScalar[T comparable](a, b Optional[T]) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	return a.value == b.value
}

// CompareBytes orders two optional byte-string fields. An absent field
// orders before a present one; present values compare byte-wise.
func CompareBytes(a, b Optional[[]byte]) int {
	if a.present != b.present {
		if a.present {
			return 1
		}
		return -1
	}
	if !a.present {
		return 0
	}
	return bytes.Compare(a.value, b.value)
}

// EqualBytes reports whether two optional byte-string fields are both absent
// or hold equal bytes.
func EqualBytes(a, b Optional[[]byte]) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	return bytes.Equal(a.value, b.value)
}

// CopyBytes returns a deep copy of an optional byte-string field. The
// returned value never aliases the source buffer.
func CopyBytes(o Optional[[]byte]) Optional[[]byte] {
	if !o.present {
		return Optional[[]byte]{}
	}
	return OptionalOf(bytes.Clone(o.value))
}
