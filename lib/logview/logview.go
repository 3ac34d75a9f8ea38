// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package logview maintains the log viewer's bounded, scrollable line
// history: rendered log lines in a ring buffer, dual-axis scroll state
// with sticky-bottom tail tracking, and the inline diagnostics that
// recoverable errors turn into.
package logview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ec-foundation/ecmon/lib/clock"
	"github.com/ec-foundation/ecmon/lib/logframe"
	"github.com/ec-foundation/ecmon/lib/ringbuf"
	"github.com/ec-foundation/ecmon/lib/scroll"
	"github.com/ec-foundation/ecmon/lib/tui"
)

// DefaultCapacity is the number of rendered lines the viewer retains.
const DefaultCapacity = 1000

// levelColumn is the fixed width of the level field, so messages line
// up regardless of level name length.
const levelColumn = 7

// View holds the log pane's state. It is owned by the UI goroutine;
// background workers never touch it.
type View struct {
	theme tui.Theme
	clock clock.Clock

	lines    *ringbuf.Buffer[string]
	yScroll  scroll.State
	xScroll  scroll.State
	maxWidth int
}

// New creates an empty view retaining DefaultCapacity lines.
func New(theme tui.Theme, clk clock.Clock) *View {
	return &View{
		theme:   theme,
		clock:   clk,
		lines:   ringbuf.New[string](DefaultCapacity),
		yScroll: scroll.NewState(),
		xScroll: scroll.NewState(),
	}
}

// AppendFrame renders a decoded frame into the history. The first
// line carries the timestamp and level prefix; continuation lines of
// a multi-line message are left-padded to align under it.
func (v *View) AppendFrame(frame logframe.Frame) {
	timestamp := " "
	if frame.HasTimestamp() {
		timestamp = frame.DisplayTimestamp() + " "
	}

	level := " "
	if frame.Level != "" {
		level = strings.ToUpper(string(frame.Level))
	}
	levelField := lipgloss.NewStyle().
		Foreground(v.theme.LevelColor(string(frame.Level))).
		Render(fmt.Sprintf("%-*s", levelColumn, level))

	parts := strings.Split(frame.Message, "\n")
	v.insert(timestamp + levelField + parts[0])

	padding := strings.Repeat(" ", len(timestamp)+levelColumn)
	for _, continuation := range parts[1:] {
		v.insert(padding + continuation)
	}

	v.updateScroll(len(parts))
}

// Meta appends a timestamped host-side diagnostic line, styled
// distinctly from hardware log lines.
func (v *View) Meta(message string) {
	line := lipgloss.NewStyle().
		Foreground(v.theme.Diagnostic).
		Render(fmt.Sprintf("%s <%s>", v.clock.Now().Format("15:04:05"), message))
	v.insert(line)
	v.updateScroll(1)
}

// helpLines is the command reference Help prints.
var helpLines = []string{
	"Commands supported:",
	"help (Display help)",
	"attach <path> (Attach an EC firmware image to view debug logs)",
	"detach (Detach firmware image)",
}

// Help appends the command reference to the history.
func (v *View) Help() {
	for _, line := range helpLines {
		v.insert(line)
	}
	v.updateScroll(len(helpLines))
}

func (v *View) insert(line string) {
	// The max observed width only grows, even as wide lines are
	// evicted. An intentional approximation: recomputing the true
	// max on every eviction buys nothing visible.
	if width := ansi.StringWidth(line); width > v.maxWidth {
		v.maxWidth = width
	}
	v.lines.Insert(line)
}

func (v *View) updateScroll(added int) {
	v.yScroll.Update(v.lines.Len(), added)
	v.xScroll.Update(v.maxWidth, 0)
}

// SetViewport records the log pane's inner size, once per render.
func (v *View) SetViewport(height, width int) {
	v.yScroll.SetViewport(height)
	v.xScroll.SetViewport(width)
}

// Lines returns the rendered history, oldest first, consistent for
// one render pass.
func (v *View) Lines() []string { return v.lines.Snapshot() }

// MaxWidth returns the widest line ever observed.
func (v *View) MaxWidth() int { return v.maxWidth }

// ScrollUp moves the vertical position one line toward the oldest.
func (v *View) ScrollUp() { v.yScroll.Backward() }

// ScrollDown moves the vertical position one line toward the newest.
func (v *View) ScrollDown() { v.yScroll.Forward() }

// ScrollLeft moves the horizontal position one column back.
func (v *View) ScrollLeft() { v.xScroll.Backward() }

// ScrollRight moves the horizontal position one column forward.
func (v *View) ScrollRight() { v.xScroll.Forward() }

// YScroll returns the vertical scroll position and scrollable range.
func (v *View) YScroll() (position, max int) {
	return v.yScroll.Position(), v.yScroll.Max()
}

// XScroll returns the horizontal scroll position and scrollable range.
func (v *View) XScroll() (position, max int) {
	return v.xScroll.Position(), v.xScroll.Max()
}
