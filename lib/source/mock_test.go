// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"testing"
	"time"

	"github.com/ec-foundation/ecmon/lib/clock"
	"github.com/ec-foundation/ecmon/lib/logframe"
	"github.com/ec-foundation/ecmon/lib/testutil"
)

func TestMockFramesDecode(t *testing.T) {
	mock := NewMock()
	decoder := MockTable().NewStreamDecoder()

	for i := 0; i < 2*len(mockEntries); i++ {
		raw, err := mock.Debug()
		if err != nil {
			t.Fatalf("Debug(): %v", err)
		}
		decoder.Received(raw)

		frame, err := decoder.Decode()
		if err != nil {
			t.Fatalf("frame %d failed to decode: %v", i, err)
		}
		wantIndex := uint16(i%len(mockEntries)) + 1
		if frame.Index != wantIndex {
			t.Errorf("frame %d has index %d, want %d", i, frame.Index, wantIndex)
		}
		wantTimestamp := uint64(i+1) * mockTimestampStep
		if frame.Timestamp != wantTimestamp {
			t.Errorf("frame %d has timestamp %d, want %d", i, frame.Timestamp, wantTimestamp)
		}
		if frame.Message != mockEntries[wantIndex].Message {
			t.Errorf("frame %d has message %q, want %q", i, frame.Message, mockEntries[wantIndex].Message)
		}
	}
}

func TestMockTableBlobRoundtrip(t *testing.T) {
	blob, err := MockTableBlob()
	if err != nil {
		t.Fatalf("MockTableBlob(): %v", err)
	}

	table, err := logframe.ParseMetadata(blob)
	if err != nil {
		t.Fatalf("ParseMetadata(): %v", err)
	}
	if table.Len() != len(mockEntries) {
		t.Errorf("parsed table has %d entries, want %d", table.Len(), len(mockEntries))
	}
	if table.TimestampHz() != mockTimestampHz {
		t.Errorf("parsed table has hz %d, want %d", table.TimestampHz(), mockTimestampHz)
	}
}

func TestBatteryTriangleWave(t *testing.T) {
	mock := NewMock()

	previous := 100.0
	hitBottom := false
	for i := 0; i < 50; i++ {
		capacity, err := mock.BatteryCapacity()
		if err != nil {
			t.Fatalf("BatteryCapacity(): %v", err)
		}
		if capacity < 0 || capacity > 100 {
			t.Fatalf("sample %d out of range: %v", i, capacity)
		}
		if capacity == 0 {
			hitBottom = true
		}
		if !hitBottom && capacity >= previous {
			t.Fatalf("sample %d not falling before the bottom: %v after %v", i, capacity, previous)
		}
		previous = capacity
	}
	if !hitBottom {
		t.Error("wave never reached the bottom in 50 samples")
	}
}

func TestMockDriverPacedByClock(t *testing.T) {
	fake := clock.Fake(time.Now())
	driver := NewMockDriver(fake)

	codes := make(chan uint32, 1)
	go func() {
		codes <- driver.Wait(20)
	}()

	fake.AwaitWaiters(1)
	select {
	case code := <-codes:
		t.Fatalf("Wait returned %d before the clock advanced", code)
	default:
	}

	fake.Advance(500 * time.Millisecond)
	if code := testutil.RequireReceive(t, codes, 5*time.Second, "waiting for Wait to return"); code != 20 {
		t.Errorf("Wait returned %d, want 20", code)
	}
}
