// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package logui is the bubbletea model for the EC debug log dashboard.
//
// The model is the sole consumer of the notification receivers: once
// per tick it drains the debug and battery queues completely, feeds
// the stream decoder, and appends decoded frames (or diagnostics) to
// the log view. Attach and detach drive the receiver pause state, so
// no notification waits happen while nothing can consume them.
package logui
