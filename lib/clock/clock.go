// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time operations for testability. Production code
// injects Real(); tests inject Fake() and drive time with Advance.
//
// Anything in ecmon that timestamps a diagnostic line or paces a
// polling loop takes a Clock instead of calling the time package
// directly, so tests of the log viewer and the mock driver are
// deterministic.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses the calling goroutine for at least duration d.
	Sleep(d time.Duration)

	// After returns a channel that receives the current time once
	// duration d has elapsed.
	After(d time.Duration) <-chan time.Time
}
