// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ec-foundation/ecmon/lib/clock"
	"github.com/ec-foundation/ecmon/lib/logframe"
	"github.com/ec-foundation/ecmon/lib/logview"
	"github.com/ec-foundation/ecmon/lib/notify"
	"github.com/ec-foundation/ecmon/lib/ringbuf"
	"github.com/ec-foundation/ecmon/lib/source"
	"github.com/ec-foundation/ecmon/lib/tui"
)

// DefaultTick is the consumer drain cadence. The receiver queues are
// sized against this: they absorb a second of notifications between
// drains.
const DefaultTick = time.Second

// batteryHistory is the number of battery samples kept for the status
// line.
const batteryHistory = 60

// tickMsg drives the periodic receiver drain.
type tickMsg struct{}

// Config assembles the dashboard's dependencies.
type Config struct {
	Theme   tui.Theme
	Clock   clock.Clock
	Source  source.Source
	Service *notify.Service

	// Tick overrides DefaultTick when positive.
	Tick time.Duration

	// AttachPath, when set, attaches a firmware image at startup as
	// if the user had run "attach <path>".
	AttachPath string

	// AllowMockTable lets "attach mock" use the built-in mock decode
	// table. Enabled when running against the mock source.
	AllowMockTable bool
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	theme          tui.Theme
	clock          clock.Clock
	source         source.Source
	keys           KeyMap
	tick           time.Duration
	allowMockTable bool

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	view  *logview.View
	input textinput.Model

	// Attach state. decoder is nil while detached; it is replaced
	// wholesale on every attach, never reused across tables.
	decoder      *logframe.StreamDecoder
	attachedName string

	// Receiver streams. debugRx pauses while detached; batteryRx runs
	// for the model's whole lifetime.
	debugRx   *notify.Receiver[[]byte]
	batteryRx *notify.Receiver[float64]
	battery   *ringbuf.Buffer[float64]
}

// NewModel wires the dashboard to a notification service and source.
// The debug receiver starts paused; the battery receiver starts
// immediately. If Config.AttachPath is set the attach happens here, so
// its diagnostic (on failure) is the first line in the view.
func NewModel(config Config) Model {
	tick := config.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "help"
	input.Focus()

	model := Model{
		theme:          config.Theme,
		clock:          config.Clock,
		source:         config.Source,
		keys:           DefaultKeyMap,
		tick:           tick,
		allowMockTable: config.AllowMockTable,
		view:           logview.New(config.Theme, config.Clock),
		input:          input,
		battery:        ringbuf.New[float64](batteryHistory),
	}

	model.debugRx = notify.NewReceiver(config.Service, notify.DebugFrameAvailable,
		func(notify.Event) ([]byte, error) { return config.Source.Debug() })
	model.batteryRx = notify.NewReceiver(config.Service, notify.BatteryTripPoint,
		func(notify.Event) (float64, error) { return config.Source.BatteryCapacity() })
	model.batteryRx.Start()

	if config.AttachPath != "" {
		model.attach(config.AttachPath)
	} else {
		model.detachedNotice()
	}

	return model
}

// detachedNotice explains the empty log pane and how to fill it.
func (m *Model) detachedNotice() {
	m.view.Meta("No firmware image attached so debug logs are not available")
	if m.allowMockTable {
		m.view.Meta("Run 'attach mock' to view logs from the simulated EC")
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scheduleTick())
}

// scheduleTick arms the next drain tick.
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tickMsg:
		m.drainDebug()
		m.drainBattery()
		return m, m.scheduleTick()

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.view.SetViewport(m.logHeight(), m.logWidth())
		m.input.Width = m.width - len(m.input.Prompt) - 1

	case tea.KeyMsg:
		switch {
		case key.Matches(message, m.keys.Quit):
			m.shutdown()
			return m, tea.Quit

		case key.Matches(message, m.keys.Submit):
			m.submit(m.input.Value())
			m.input.Reset()

		case key.Matches(message, m.keys.ScrollUp):
			m.view.ScrollUp()
		case key.Matches(message, m.keys.ScrollDown):
			m.view.ScrollDown()
		case key.Matches(message, m.keys.ScrollLeft):
			m.view.ScrollLeft()
		case key.Matches(message, m.keys.ScrollRight):
			m.view.ScrollRight()

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(message)
			return m, cmd
		}
	}
	return m, nil
}

// shutdown closes both receivers so their workers exit. The
// notification service itself belongs to main and outlives the model.
func (m *Model) shutdown() {
	m.debugRx.Close()
	m.batteryRx.Close()
}

// submit parses and executes one command line.
func (m *Model) submit(line string) {
	command, err := logview.ParseCommand(line)
	if err != nil {
		m.view.Meta(fmt.Sprintf("invalid command %q, try 'help'", line))
		return
	}

	switch command := command.(type) {
	case logview.Attach:
		m.attach(command.Path)
	case logview.Detach:
		m.detach()
	case logview.Help:
		m.view.Help()
	}
}

// attach loads a decode table and resumes the debug stream. Failure is
// a diagnostic and leaves the viewer detached, whatever image was
// attached before: a table the user asked to replace is never kept.
func (m *Model) attach(path string) {
	table, err := m.loadTable(path)
	if err != nil {
		m.decoder = nil
		m.attachedName = ""
		m.debugRx.Stop()
		m.view.Meta(fmt.Sprintf("failed to attach %s: %v", path, err))
		return
	}

	m.decoder = table.NewStreamDecoder()
	m.attachedName = filepath.Base(path)
	m.view.Meta(fmt.Sprintf("Attached firmware image: %s", m.attachedName))
	m.debugRx.Start()

	// Priming read: a notification that fired before the stream was
	// running has no queued sample, so fetch whatever frame the
	// firmware already has ready.
	raw, err := m.source.Debug()
	if err != nil {
		m.view.Meta(fmt.Sprintf("debug read failed: %v", err))
		return
	}
	m.feedDecoder(raw)
}

// loadTable resolves an attach path to a decode table.
func (m *Model) loadTable(path string) (*logframe.Table, error) {
	if path == "mock" && m.allowMockTable {
		return source.MockTable(), nil
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return logframe.ParseMetadata(blob)
}

// detach drops the decode table and pauses the debug stream.
func (m *Model) detach() {
	m.decoder = nil
	m.attachedName = ""
	m.debugRx.Stop()
	m.view.Meta("No firmware image attached so debug logs are not available")
}

// drainDebug empties the debug receiver queue into the decoder. While
// detached any residual samples (queued before the stop took effect)
// are discarded.
func (m *Model) drainDebug() {
	for {
		sample, ok := m.debugRx.Receive()
		if !ok {
			return
		}
		if sample.Err != nil {
			m.view.Meta(fmt.Sprintf("debug read failed: %v", sample.Err))
			continue
		}
		if m.decoder == nil {
			continue
		}
		m.feedDecoder(sample.Value)
	}
}

// feedDecoder appends raw bytes and decodes every complete frame they
// finish. Malformed frames become diagnostics and decoding continues
// at the next frame boundary; an incomplete tail stays buffered.
func (m *Model) feedDecoder(raw []byte) {
	m.decoder.Received(raw)
	for {
		frame, err := m.decoder.Decode()
		if errors.Is(err, logframe.ErrUnexpectedEOF) {
			return
		}
		if err != nil {
			m.view.Meta(fmt.Sprintf("dropped a damaged log frame: %v", err))
			continue
		}
		m.view.AppendFrame(frame)
	}
}

// drainBattery empties the battery receiver queue into the sample
// history.
func (m *Model) drainBattery() {
	for {
		sample, ok := m.batteryRx.Receive()
		if !ok {
			return
		}
		if sample.Err != nil {
			m.view.Meta(fmt.Sprintf("battery read failed: %v", sample.Err))
			continue
		}
		m.battery.Insert(sample.Value)
	}
}
