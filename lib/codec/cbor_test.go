// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	type entry struct {
		Level   string `cbor:"level,omitempty"`
		Message string `cbor:"message"`
	}
	in := map[uint16]entry{
		1: {Level: "info", Message: "EC boot complete"},
		2: {Message: "heartbeat"},
	}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[uint16]entry
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != 2 || out[1] != in[1] || out[2] != in[2] {
		t.Errorf("round trip mismatch: got %v, want %v", out, in)
	}
}

// TestDeterministic: the same value must always encode to the same
// bytes, since the decode table section is compared across builds.
func TestDeterministic(t *testing.T) {
	value := map[string]any{"b": 2, "a": 1, "c": []int{3, 2, 1}}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("encodings differ: %x vs %x", first, second)
	}
}
