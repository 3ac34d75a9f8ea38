// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ec-foundation/ecmon/lib/testutil"
)

// gatedDriver completes one Wait call per code sent to fire. Wait
// returns whatever code the test sends, so tests control both the
// pacing and the mapping path.
type gatedDriver struct {
	initErr   error
	fire      chan uint32
	waitCalls atomic.Int32
	cleanups  atomic.Int32
}

func newGatedDriver() *gatedDriver {
	return &gatedDriver{fire: make(chan uint32)}
}

func (d *gatedDriver) Init() error { return d.initErr }

func (d *gatedDriver) Wait(code uint32) uint32 {
	d.waitCalls.Add(1)
	return <-d.fire
}

func (d *gatedDriver) Cleanup() { d.cleanups.Add(1) }

// immediateDriver completes every Wait instantly with the requested
// code, like a mock notification source that always has data.
type immediateDriver struct {
	waitCalls atomic.Int32
}

func (d *immediateDriver) Init() error { return nil }

func (d *immediateDriver) Wait(code uint32) uint32 {
	d.waitCalls.Add(1)
	return code
}

func (d *immediateDriver) Cleanup() {}

func newTestService(t *testing.T, driver Driver) *Service {
	t.Helper()
	service, err := NewService(driver)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(service.Close)
	return service
}

func TestServiceSingleton(t *testing.T) {
	driver := newGatedDriver()

	service, err := NewService(driver)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := NewService(driver); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("second NewService = %v, want ErrAlreadyActive", err)
	}

	service.Close()
	service.Close() // second close is a no-op
	if got := driver.cleanups.Load(); got != 1 {
		t.Errorf("driver cleaned up %d times, want 1", got)
	}

	// The slot is free again.
	second, err := NewService(driver)
	if err != nil {
		t.Fatalf("NewService after Close: %v", err)
	}
	second.Close()
}

func TestServiceInitFailureReleasesSlot(t *testing.T) {
	bad := newGatedDriver()
	bad.initErr = errors.New("no EC present")

	if _, err := NewService(bad); err == nil {
		t.Fatal("NewService with failing driver init succeeded")
	}

	good := newGatedDriver()
	service, err := NewService(good)
	if err != nil {
		t.Fatalf("NewService after failed init: %v", err)
	}
	service.Close()
}

func TestReceiverDeliversInOrder(t *testing.T) {
	driver := newGatedDriver()
	service := newTestService(t, driver)

	var sequence atomic.Int32
	receiver := NewReceiver(service, DebugFrameAvailable, func(Event) (int32, error) {
		return sequence.Add(1), nil
	})
	defer receiver.Close()
	receiver.Start()

	for i := 0; i < 3; i++ {
		testutil.RequireSend(t, driver.fire, uint32(20), 5*time.Second, "firing wait %d", i)
	}

	var got []int32
	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		for {
			sample, ok := receiver.Receive()
			if !ok {
				break
			}
			if sample.Err != nil {
				t.Errorf("sample error: %v", sample.Err)
			}
			got = append(got, sample.Value)
		}
		return len(got) == 3
	}, "waiting for three samples")

	for i, v := range got {
		if v != int32(i+1) {
			t.Errorf("sample %d = %d, want %d (wait-completion order)", i, v, i+1)
		}
	}
}

func TestReceiverInitiallyPaused(t *testing.T) {
	driver := &immediateDriver{}
	service := newTestService(t, driver)

	receiver := NewReceiver(service, DebugFrameAvailable, func(Event) (int, error) {
		return 0, nil
	})
	defer receiver.Close()

	time.Sleep(50 * time.Millisecond)
	if calls := driver.waitCalls.Load(); calls != 0 {
		t.Errorf("worker made %d wait calls while paused", calls)
	}
	if _, ok := receiver.Receive(); ok {
		t.Error("Receive returned a sample from a paused receiver")
	}
}

// TestStopPausesStream: with a driver whose wait fires immediately,
// Stop must quiesce the stream — after draining the in-flight backlog,
// Receive stays empty and the wait-call count freezes. Start resumes
// delivery on the same receiver.
func TestStopPausesStream(t *testing.T) {
	driver := &immediateDriver{}
	service := newTestService(t, driver)

	receiver := NewReceiver(service, DebugFrameAvailable, func(Event) (int, error) {
		return 1, nil
	})
	defer receiver.Close()

	receiver.Start()
	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		_, ok := receiver.Receive()
		return ok
	}, "waiting for the stream to produce")

	receiver.Stop()

	// Drain until the worker has parked: the backlog (at most the
	// queue plus one in-flight push) empties and the wait-call count
	// stops moving.
	var settledCalls int32
	testutil.Eventually(t, 5*time.Second, 5*time.Millisecond, func() bool {
		for {
			if _, ok := receiver.Receive(); !ok {
				break
			}
		}
		calls := driver.waitCalls.Load()
		settled := calls == settledCalls
		settledCalls = calls
		return settled
	}, "waiting for the worker to park")

	// Parked means parked: no new wait calls, no new samples.
	time.Sleep(50 * time.Millisecond)
	if calls := driver.waitCalls.Load(); calls != settledCalls {
		t.Errorf("wait calls advanced from %d to %d after Stop", settledCalls, calls)
	}
	if _, ok := receiver.Receive(); ok {
		t.Error("Receive returned a sample after the stream settled")
	}

	// Resume without reconstructing the receiver.
	receiver.Start()
	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		_, ok := receiver.Receive()
		return ok
	}, "waiting for delivery to resume after Start")
}

func TestUnmappedCodesDiscarded(t *testing.T) {
	driver := newGatedDriver()
	service := newTestService(t, driver)

	var sampled atomic.Int32
	var lastEvent atomic.Int32
	receiver := NewReceiver(service, DebugFrameAvailable, func(event Event) (int, error) {
		sampled.Add(1)
		lastEvent.Store(int32(event))
		return 0, nil
	})
	defer receiver.Close()
	receiver.Start()

	// Three codes the host does not know, then a real one.
	for _, code := range []uint32{0, 7, 0xffffffff, 20} {
		testutil.RequireSend(t, driver.fire, code, 5*time.Second, "firing code %d", code)
	}

	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		_, ok := receiver.Receive()
		return ok
	}, "waiting for the mapped event's sample")

	if got := sampled.Load(); got != 1 {
		t.Errorf("sampling callback ran %d times, want 1 (unmapped codes discarded)", got)
	}
	if got := Event(lastEvent.Load()); got != DebugFrameAvailable {
		t.Errorf("callback saw event %v, want DebugFrameAvailable", got)
	}
}

func TestCloseWhileParked(t *testing.T) {
	driver := newGatedDriver()
	service := newTestService(t, driver)

	receiver := NewReceiver(service, BatteryTripPoint, func(Event) (int, error) {
		return 0, nil
	})

	receiver.Close()
	receiver.Close() // idempotent

	// The worker exits and closes the queue; Receive reports empty
	// without panicking because the drop was consumer-initiated.
	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		select {
		case _, ok := <-receiver.results:
			return !ok
		default:
			return false
		}
	}, "waiting for the worker to exit")

	if _, ok := receiver.Receive(); ok {
		t.Error("Receive returned a sample after Close")
	}
}

// TestCloseWhileMidPush: a worker blocked pushing into a full queue
// that the consumer will never drain must exit promptly on Close.
func TestCloseWhileMidPush(t *testing.T) {
	driver := &immediateDriver{}
	service := newTestService(t, driver)

	receiver := NewReceiver(service, DebugFrameAvailable, func(Event) (int, error) {
		return 0, nil
	})
	receiver.Start()

	// Never drain: the worker fills the queue and blocks in its push.
	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		return driver.waitCalls.Load() >= queueCapacity+1
	}, "waiting for the queue to fill")

	receiver.Close()

	// The worker notices the dropped consumer and exits: the queue
	// drains to a closed channel.
	testutil.Eventually(t, 5*time.Second, time.Millisecond, func() bool {
		for {
			select {
			case _, ok := <-receiver.results:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, "waiting for the worker to exit mid-push")
}

// TestReceivePanicsOnUnexpectedTermination exercises the invariant
// directly: a queue that disconnected without a consumer Close is a
// lifecycle bug and must be fatal.
func TestReceivePanicsOnUnexpectedTermination(t *testing.T) {
	receiver := &Receiver[int]{
		results: make(chan Sample[int]),
		done:    make(chan struct{}),
	}
	close(receiver.results) // worker died without Close

	defer func() {
		if recover() == nil {
			t.Error("Receive did not panic after unexpected worker termination")
		}
	}()
	receiver.Receive()
}

func TestEventCodes(t *testing.T) {
	cases := []struct {
		event Event
		code  uint32
	}{
		{BatteryTripPoint, 1},
		{DebugFrameAvailable, 20},
	}
	for _, tc := range cases {
		if got := tc.event.Code(); got != tc.code {
			t.Errorf("%v.Code() = %d, want %d", tc.event, got, tc.code)
		}
		mapped, ok := eventFromCode(tc.code)
		if !ok || mapped != tc.event {
			t.Errorf("eventFromCode(%d) = %v/%t, want %v", tc.code, mapped, ok, tc.event)
		}
	}
	if _, ok := eventFromCode(999); ok {
		t.Error("eventFromCode(999) mapped an unknown code")
	}
}
