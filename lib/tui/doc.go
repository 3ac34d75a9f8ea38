// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal UI components for ecmon's
// dashboard: the color theme and a scrollbar renderer. Domain views
// (the log viewer, sample charts) own their data and layout and come
// here for consistent look and behavior.
package tui
