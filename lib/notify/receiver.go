// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import "sync"

// queueCapacity bounds each receiver's result queue. Sized to exceed
// plausible notification rates against a consumer that drains at
// least once per second; a worker that outruns it blocks rather than
// dropping values.
const queueCapacity = 128

// Sample is one queued result from a worker wakeup. A sampling
// callback that failed still produces a Sample, carrying the error
// for the consumer to render as a diagnostic.
type Sample[T any] struct {
	Value T
	Err   error
}

// Receiver is one consumer's pausable stream of samples for one event
// kind. It owns a dedicated worker goroutine for its whole lifetime.
//
// State machine: Paused (initial) <-> Running via Start/Stop. While
// paused the worker parks on the pause gate and makes no wait calls.
// Stop takes effect before the next wait attempt; an in-flight
// blocking wait is not interrupted.
//
// Start, Stop, and Close may be called from the consumer goroutine at
// any time. Receive must only be called by the consumer.
type Receiver[T any] struct {
	mu      sync.Mutex
	gate    *sync.Cond
	running bool
	closed  bool

	// results is written by the worker and drained by the consumer.
	// The worker closes it on exit.
	results chan Sample[T]

	// done is closed by Close so a worker blocked mid-push can see
	// the consumer is gone.
	done chan struct{}

	closeOnce sync.Once
}

// NewReceiver spawns the worker goroutine for event and returns the
// receiver bound to it. sample is invoked once per wakeup, on the
// worker goroutine, with the event that fired; whatever it returns is
// queued for the consumer.
func NewReceiver[T any](service *Service, event Event, sample func(Event) (T, error)) *Receiver[T] {
	receiver := &Receiver[T]{
		results: make(chan Sample[T], queueCapacity),
		done:    make(chan struct{}),
	}
	receiver.gate = sync.NewCond(&receiver.mu)
	go receiver.run(service.driver, event, sample)
	return receiver
}

// run is the worker loop: park while paused, block in the driver wait
// while running, sample on wakeup, queue the result.
func (r *Receiver[T]) run(driver Driver, event Event, sample func(Event) (T, error)) {
	defer close(r.results)

	for {
		r.mu.Lock()
		for !r.running && !r.closed {
			r.gate.Wait()
		}
		closed := r.closed
		r.mu.Unlock()
		if closed {
			return
		}

		code := driver.Wait(event.Code())
		fired, ok := eventFromCode(code)
		if !ok {
			// Unknown code: protocol noise, discard and re-wait.
			continue
		}

		value, err := sample(fired)
		select {
		case r.results <- Sample[T]{Value: value, Err: err}:
		case <-r.done:
			// Consumer dropped the receiver; normal shutdown.
			return
		}
	}
}

// Start resumes the stream. The worker proceeds to its next blocking
// wait immediately.
func (r *Receiver[T]) Start() {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	r.gate.Signal()
}

// Stop pauses the stream. The worker parks before its next wait
// attempt; a wait already in progress completes and may queue one
// final sample.
func (r *Receiver[T]) Stop() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// Receive returns the next queued sample without blocking. The second
// return is false when the queue is empty.
//
// Receive panics if the worker terminated for any reason other than a
// consumer-initiated Close: that state is unreachable under correct
// lifecycle use, so it is a programming error, not a runtime
// condition to handle.
func (r *Receiver[T]) Receive() (Sample[T], bool) {
	select {
	case sample, ok := <-r.results:
		if !ok {
			select {
			case <-r.done:
				return Sample[T]{}, false
			default:
			}
			panic("notify: receiver polled after its worker terminated unexpectedly")
		}
		return sample, true
	default:
		return Sample[T]{}, false
	}
}

// Close drops the receiver. The worker exits silently: immediately if
// parked on the pause gate or blocked mid-push, or after its current
// wait call returns. Safe to call more than once.
func (r *Receiver[T]) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		r.gate.Broadcast()
		close(r.done)
	})
}
