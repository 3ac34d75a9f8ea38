// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package notify

// Event is a notification kind the EC can raise. Wire codes are
// protocol constants shared with the firmware.
type Event int

const (
	// BatteryTripPoint fires when battery charge crosses the
	// configured trip point.
	BatteryTripPoint Event = iota

	// DebugFrameAvailable fires when the firmware's debug service
	// has a new log frame ready to be read.
	DebugFrameAvailable
)

// String returns the event's name for logs and diagnostics.
func (e Event) String() string {
	switch e {
	case BatteryTripPoint:
		return "battery-trip-point"
	case DebugFrameAvailable:
		return "debug-frame-available"
	default:
		return "unknown"
	}
}

// Code returns the event's wire code.
//
// TODO(hw-bringup): codes are hardcoded for the current reference
// platform; move them into platform configuration when a second
// platform lands.
func (e Event) Code() uint32 {
	switch e {
	case BatteryTripPoint:
		return 1
	case DebugFrameAvailable:
		return 20
	default:
		return 0
	}
}

// eventFromCode maps a wire code back to an Event. Codes the host
// does not know are protocol noise, not errors; workers discard them.
func eventFromCode(code uint32) (Event, bool) {
	switch code {
	case 1:
		return BatteryTripPoint, true
	case 20:
		return DebugFrameAvailable, true
	default:
		return 0, false
	}
}
