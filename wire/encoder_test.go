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
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/wfystx/gnebula/wire"
)

type encodeTestDefinition struct {
	Name     string
	HexBytes string
	Encode   func(e *wire.Encoder) error
}

var encodeTests = []encodeTestDefinition{
	{
		Name:     "field header",
		HexBytes: "080001",
		Encode: func(e *wire.Encoder) error {
			return e.WriteFieldBegin(1, wire.TypeI32)
		},
	},
	{
		Name:     "stop marker",
		HexBytes: "00",
		Encode: func(e *wire.Encoder) error {
			return e.WriteFieldStop()
		},
	},
	{
		Name:     "i32",
		HexBytes: "fffffffe",
		Encode: func(e *wire.Encoder) error {
			return e.WriteI32(-2)
		},
	},
	{
		Name:     "i64",
		HexBytes: "000000000000002a",
		Encode: func(e *wire.Encoder) error {
			return e.WriteI64(42)
		},
	},
	{
		Name:     "length-prefixed bytes",
		HexBytes: "00000003616263",
		Encode: func(e *wire.Encoder) error {
			return e.WriteBytes([]byte("abc"))
		},
	},
	{
		Name:     "nil bytes as zero length",
		HexBytes: "00000000",
		Encode: func(e *wire.Encoder) error {
			return e.WriteBytes(nil)
		},
	},
	{
		Name:     "list header",
		HexBytes: "0b00000002",
		Encode: func(e *wire.Encoder) error {
			return e.WriteListBegin(wire.TypeBytes, 2)
		},
	},
	{
		Name:     "struct framing produces no bytes",
		HexBytes: "",
		Encode: func(e *wire.Encoder) error {
			if err := e.WriteStructBegin("Empty"); err != nil {
				return err
			}
			return e.WriteStructEnd()
		},
	},
}

func TestEncode(t *testing.T) {
	for _, test := range encodeTests {
		var buf bytes.Buffer
		enc := wire.NewEncoder(&buf)
		if err := test.Encode(enc); err != nil {
			t.Fatalf("%s: unexpected error: %s", test.Name, err)
		}
		gotHex := hex.EncodeToString(buf.Bytes())
		if gotHex != test.HexBytes {
			t.Fatalf(
				"%s: did not encode to expected bytes\n  got: %s\n  wanted: %s",
				test.Name,
				gotHex,
				test.HexBytes,
			)
		}
	}
}

func TestEncodeFullField(t *testing.T) {
	var buf bytes.Buffer
	enc := wire.NewEncoder(&buf)
	if err := enc.WriteStructBegin("Example"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := enc.WriteFieldBegin(3, wire.TypeI64); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := enc.WriteI64(7); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := enc.WriteFieldEnd(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := enc.WriteFieldStop(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := enc.WriteStructEnd(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	wanted := "0a0003000000000000000700"
	gotHex := hex.EncodeToString(buf.Bytes())
	if gotHex != wanted {
		t.Fatalf(
			"field did not encode to expected bytes\n  got: %s\n  wanted: %s",
			gotHex,
			wanted,
		)
	}
}
