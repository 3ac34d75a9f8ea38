// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package source provides the data sources behind EC notifications:
// the interface the dashboard samples through, and a deterministic
// mock implementation for running without hardware.
package source

// Source reads EC data in response to notifications. Debug fetches the
// raw log frame bytes the firmware has ready; BatteryCapacity samples
// the current charge percentage.
//
// Methods are called from receiver worker goroutines and must be safe
// for concurrent use.
type Source interface {
	Debug() ([]byte, error)
	BatteryCapacity() (float64, error)
}
