// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package ringbuf provides a fixed-capacity FIFO that evicts the oldest
// element on overflow. It backs every bounded history in ecmon: rendered
// log lines in the log viewer and numeric sample history for charts use
// the same buffer, differing only in element type.
//
// A Buffer is owned by a single goroutine (the UI consumer) and is not
// safe for concurrent use.
package ringbuf

// Buffer is a fixed-capacity circular FIFO. Insert appends; once the
// buffer is full, each insert silently evicts the oldest element. There
// is no archival: evicted elements are gone.
type Buffer[T any] struct {
	items []T
	// start indexes the oldest element within items.
	start int
	count int
}

// New creates a buffer holding at most capacity elements. Panics if
// capacity is less than 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		panic("ringbuf: capacity must be at least 1")
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Insert appends item, evicting the oldest element if the buffer is
// already at capacity. O(1).
func (b *Buffer[T]) Insert(item T) {
	if b.count == len(b.items) {
		b.items[b.start] = item
		b.start = (b.start + 1) % len(b.items)
		return
	}
	b.items[(b.start+b.count)%len(b.items)] = item
	b.count++
}

// Len returns the number of elements currently stored.
func (b *Buffer[T]) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// Last returns the most recently inserted element, or false if the
// buffer is empty.
func (b *Buffer[T]) Last() (T, bool) {
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.items[(b.start+b.count-1)%len(b.items)], true
}

// Snapshot returns the stored elements oldest-first. The returned slice
// is a copy: it stays consistent for the duration of a render pass no
// matter what is inserted afterwards.
func (b *Buffer[T]) Snapshot() []T {
	out := make([]T, b.count)
	for i := range out {
		out[i] = b.items[(b.start+i)%len(b.items)]
	}
	return out
}
