// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the dashboard's color palette. All colors use ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Log level colors, keyed by the firmware's level strings.
	LevelTrace lipgloss.Color
	LevelDebug lipgloss.Color
	LevelInfo  lipgloss.Color
	LevelWarn  lipgloss.Color
	LevelError lipgloss.Color

	// Diagnostic is the color for host-side inline diagnostics in
	// the log view, styled distinctly from hardware log lines.
	Diagnostic lipgloss.Color

	// UI chrome.
	TitleForeground lipgloss.Color
	BorderColor     lipgloss.Color
	HelpText        lipgloss.Color

	// Accent marks the scrollbar thumb and other active elements.
	Accent lipgloss.Color
}

// DefaultTheme is the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		NormalText:      lipgloss.Color("252"),
		FaintText:       lipgloss.Color("243"),
		LevelTrace:      lipgloss.Color("245"),
		LevelDebug:      lipgloss.Color("255"),
		LevelInfo:       lipgloss.Color("40"),
		LevelWarn:       lipgloss.Color("220"),
		LevelError:      lipgloss.Color("196"),
		Diagnostic:      lipgloss.Color("51"),
		TitleForeground: lipgloss.Color("255"),
		BorderColor:     lipgloss.Color("240"),
		HelpText:        lipgloss.Color("243"),
		Accent:          lipgloss.Color("39"),
	}
}

// LevelColor returns the color for a log level string. Unknown levels
// (including the empty, unleveled case) render as normal text.
func (theme Theme) LevelColor(level string) lipgloss.Color {
	switch level {
	case "trace":
		return theme.LevelTrace
	case "debug":
		return theme.LevelDebug
	case "info":
		return theme.LevelInfo
	case "warn":
		return theme.LevelWarn
	case "error":
		return theme.LevelError
	default:
		return theme.NormalText
	}
}
