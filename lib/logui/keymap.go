// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard's key bindings. Plain arrows are left
// to the command input; scrolling takes shift.
type KeyMap struct {
	Quit        key.Binding
	Submit      key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
}

// DefaultKeyMap is the standard binding set.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run command"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("shift+up"),
		key.WithHelp("shift+↑", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("shift+down"),
		key.WithHelp("shift+↓", "scroll down"),
	),
	ScrollLeft: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("shift+←", "scroll left"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("shift+right"),
		key.WithHelp("shift+→", "scroll right"),
	),
}
