// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// ecmon is a terminal dashboard for EC (embedded controller) telemetry:
// battery trip-point samples and the firmware's binary debug log
// stream, decoded against the string table embedded in the firmware
// image.
//
// Hardware access goes through the EC notification driver, of which
// the process may hold exactly one instance. With --mock the dashboard
// runs against a built-in simulated EC instead, which is also the only
// driver wired up in this build; see lib/notify for the driver
// contract a native implementation must satisfy.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/ec-foundation/ecmon/lib/clock"
	"github.com/ec-foundation/ecmon/lib/logui"
	"github.com/ec-foundation/ecmon/lib/notify"
	"github.com/ec-foundation/ecmon/lib/source"
	"github.com/ec-foundation/ecmon/lib/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var mock bool
	var attachPath string
	var tick time.Duration
	var logOutput string

	flagSet := pflag.NewFlagSet("ecmon", pflag.ContinueOnError)
	flagSet.BoolVar(&mock, "mock", false, "run against a simulated EC instead of hardware")
	flagSet.StringVar(&attachPath, "bin", "", "attach this firmware image at startup")
	flagSet.DurationVar(&tick, "tick", logui.DefaultTick, "dashboard refresh interval")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	logger, logCleanup, err := newLogger(logOutput)
	if err != nil {
		return err
	}
	defer logCleanup()

	if !mock {
		// The native driver binding is not part of this build.
		return fmt.Errorf("no native EC driver available; run with --mock")
	}

	clk := clock.Real()
	driver := source.NewMockDriver(clk)
	dataSource := source.NewMock()

	// Startup failures here (a second instance holding the driver, or
	// native initialization failing) are fatal: no UI state exists yet
	// and nothing can be rendered without notifications.
	service, err := notify.NewService(driver)
	if err != nil {
		return err
	}
	defer service.Close()

	logger.Info("notification service ready", "mock", mock, "tick", tick)

	model := logui.NewModel(logui.Config{
		Theme:          tui.DefaultTheme(),
		Clock:          clk,
		Source:         dataSource,
		Service:        service,
		Tick:           tick,
		AttachPath:     attachPath,
		AllowMockTable: mock,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// newLogger builds the process logger. Without --log-output records
// are discarded: stderr belongs to the alt-screen TUI.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `EC telemetry dashboard — battery samples and decoded debug logs.

Debug logs arrive as binary frames referencing a string table compiled
into the firmware. Attach the matching firmware image (the "attach"
command inside the dashboard, or --bin at startup) to decode them.
With --mock, "attach mock" uses the simulated EC's built-in table.

Usage:
  ecmon --mock [flags]

Examples:
  # Run against the simulated EC, logs decoded immediately
  ecmon --mock --bin mock

  # Capture background log records for post-mortem debugging
  ecmon --mock --log-output /tmp/ecmon.jsonl

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
