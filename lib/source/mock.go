// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"sync"
	"time"

	"github.com/ec-foundation/ecmon/lib/clock"
	"github.com/ec-foundation/ecmon/lib/logframe"
	"github.com/ec-foundation/ecmon/lib/notify"
)

// mockTimestampHz is the mock firmware's timestamp tick rate.
const mockTimestampHz = 1_000_000

// mockTimestampStep is the tick advance between consecutive mock
// frames: 100 ms of firmware time per frame.
const mockTimestampStep = 100_000

// mockEntries is the mock firmware's string table. Indices cycle 1..6;
// index 5 exercises multi-line rendering and index 6 the unleveled
// raw-print case.
var mockEntries = map[uint16]logframe.Entry{
	1: {Level: logframe.LevelInfo, Message: "EC boot complete, firmware 2.4.1"},
	2: {Level: logframe.LevelDebug, Message: "charger: input current limit 3000 mA"},
	3: {Level: logframe.LevelTrace, Message: "i2c0: transfer 4 bytes to 0x6a"},
	4: {Level: logframe.LevelWarn, Message: "thermal: sensor 2 above soft limit\nthrottling charge rate"},
	5: {Level: logframe.LevelError, Message: "keyboard: matrix scan timeout"},
	6: {Message: "tick"},
}

// MockTable returns the decode table matching Mock's frames.
func MockTable() *logframe.Table {
	return logframe.NewTable(mockTimestampHz, mockEntries)
}

// MockTableBlob returns MockTable encoded as a bare section payload,
// the way an extracted .eclog section would arrive.
func MockTableBlob() ([]byte, error) {
	return logframe.EncodeTable(MockTable())
}

// Mock is a deterministic Source: Debug yields frames cycling through
// the mock string table with a steadily advancing timestamp, and
// BatteryCapacity yields a triangle wave between 0 and 100.
type Mock struct {
	mu        sync.Mutex
	index     uint16
	timestamp uint64
	battery   float64
	draining  bool
}

// NewMock returns a mock source starting at the beginning of its cycle.
func NewMock() *Mock {
	return &Mock{battery: 100, draining: true}
}

// Debug returns the next encoded log frame. It never fails.
func (m *Mock) Debug() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.index = m.index%uint16(len(mockEntries)) + 1
	m.timestamp += mockTimestampStep
	return logframe.EncodeFrame(m.index, m.timestamp), nil
}

// BatteryCapacity returns the next triangle-wave sample. It never
// fails.
func (m *Mock) BatteryCapacity() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draining {
		m.battery -= 5
		if m.battery <= 0 {
			m.battery = 0
			m.draining = false
		}
	} else {
		m.battery += 5
		if m.battery >= 100 {
			m.battery = 100
			m.draining = true
		}
	}
	return m.battery, nil
}

// mockWaitInterval paces mock notifications.
const mockWaitInterval = 500 * time.Millisecond

// MockDriver is a notify.Driver that completes every wait after
// mockWaitInterval on the injected clock, always reporting the code
// that was waited on. Init and Cleanup are no-ops.
type MockDriver struct {
	clock clock.Clock
}

var _ notify.Driver = (*MockDriver)(nil)

// NewMockDriver returns a mock driver paced by clk.
func NewMockDriver(clk clock.Clock) *MockDriver {
	return &MockDriver{clock: clk}
}

func (d *MockDriver) Init() error { return nil }

func (d *MockDriver) Wait(code uint32) uint32 {
	d.clock.Sleep(mockWaitInterval)
	return code
}

func (d *MockDriver) Cleanup() {}
