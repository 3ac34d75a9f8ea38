// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package scroll tracks viewport-relative position into a growing
// content extent, one State per axis. The vertical axis of a log pane
// tracks line count; the horizontal axis tracks the widest line seen.
//
// The invariant 0 <= position <= max(0, content-viewport) holds after
// every operation. A position at the scrollable maximum is "sticky":
// it follows content growth so the newest content stays visible. A
// position anywhere else is left alone — a user who scrolled away is
// never yanked back to the tail.
package scroll

import "math"

// State is the scroll bookkeeping for one axis.
type State struct {
	position int
	viewport int
	content  int
}

// NewState returns a State whose viewport extent is effectively
// unbounded. Until SetViewport is called with a real extent (at first
// render), nothing is scrollable and the position stays 0.
func NewState() State {
	return State{viewport: math.MaxInt}
}

// SetViewport records the viewport extent, normally once per render.
// Shrinking content or growing the viewport clamps the position back
// into range.
func (s *State) SetViewport(extent int) {
	if extent < 0 {
		extent = 0
	}
	s.viewport = extent
	s.clamp()
}

// Update recomputes the content extent after added new units of
// content arrived. If the position was at the previous scrollable
// maximum, it advances to the new maximum (sticky bottom); otherwise
// it is untouched apart from clamping.
func (s *State) Update(content, added int) {
	if content < 0 {
		content = 0
	}
	s.content = content
	if m := s.Max(); m > 0 {
		previous := m - added
		if previous < 0 {
			previous = 0
		}
		if s.position == previous {
			s.position = m
		}
	}
	s.clamp()
}

// Backward moves one step toward the start, saturating at 0.
func (s *State) Backward() {
	if s.position > 0 {
		s.position--
	}
}

// Forward moves one step toward the end, saturating at the scrollable
// maximum. No-op while the content fits within the viewport.
func (s *State) Forward() {
	if m := s.Max(); s.position < m {
		s.position++
	}
}

// Position returns the current scroll offset.
func (s *State) Position() int { return s.position }

// Max returns the scrollable range: content beyond the viewport, or 0
// when everything fits.
func (s *State) Max() int {
	if s.content <= s.viewport {
		return 0
	}
	return s.content - s.viewport
}

// Content returns the current content extent.
func (s *State) Content() int { return s.content }

func (s *State) clamp() {
	if m := s.Max(); s.position > m {
		s.position = m
	}
	if s.position < 0 {
		s.position = 0
	}
}
