// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify bridges the EC driver's blocking wait-for-notification
// primitive into pausable, bounded, non-blocking event streams.
//
// The driver exposes exactly one notification resource per process, so
// Service is a singleton: NewService acquires it, Close releases it,
// and a second live Service is a constructor error rather than a
// runtime surprise.
//
// Each Receiver owns a dedicated goroutine that blocks in the driver's
// wait call, samples data through a caller-supplied callback on every
// wakeup, and queues the result for the UI goroutine to drain once per
// tick. Receivers start paused: a viewer that is not looking at its
// stream costs no wait calls and queues nothing.
package notify
