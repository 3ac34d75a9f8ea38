// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ec-foundation/ecmon/lib/tui"
)

// Fixed chrome rows: title, battery status, command input, help footer,
// and the log pane's top and bottom border.
const chromeRows = 6

// logHeight is the log pane's inner height.
func (m Model) logHeight() int {
	height := m.height - chromeRows
	if height < 1 {
		height = 1
	}
	return height
}

// logWidth is the log pane's inner content width: the full width less
// the border columns and the scrollbar column.
func (m Model) logWidth() int {
	width := m.width - 3
	if width < 1 {
		width = 1
	}
	return width
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderLogPane())
	sections = append(sections, m.renderBatteryStatus())
	sections = append(sections, m.input.View())
	sections = append(sections, m.renderHelp())
	return strings.Join(sections, "\n")
}

func (m Model) renderTitle() string {
	name := m.attachedName
	if name == "" {
		name = "None"
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.TitleForeground).
		Bold(true).
		Render(fmt.Sprintf("Debug Information (%s)", name))
}

// renderLogPane renders the visible slice of the log history with a
// vertical scrollbar, inside a border.
func (m Model) renderLogPane() string {
	height := m.logHeight()
	width := m.logWidth()
	lines := m.view.Lines()
	yPosition, _ := m.view.YScroll()
	xPosition, _ := m.view.XScroll()

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		index := yPosition + row
		if index < 0 || index >= len(lines) {
			rows[row] = ""
			continue
		}
		rows[row] = ansi.Cut(lines[index], xPosition, xPosition+width)
	}

	content := lipgloss.NewStyle().Width(width).Render(strings.Join(rows, "\n"))
	scrollbar := tui.RenderScrollbar(m.theme, height, len(lines), height, yPosition)
	pane := lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Render(pane)
}

func (m Model) renderBatteryStatus() string {
	samples := m.battery.Snapshot()
	status := "Battery: --"
	if len(samples) > 0 {
		status = fmt.Sprintf("Battery: %.0f%%  (%d samples)", samples[len(samples)-1], len(samples))
	}
	return lipgloss.NewStyle().Foreground(m.theme.NormalText).Render(status)
}

func (m Model) renderHelp() string {
	return lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Render("enter: run command • shift+arrows: scroll • esc: quit")
}
