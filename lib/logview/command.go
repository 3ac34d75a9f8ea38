// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logview

import (
	"errors"
	"strings"
)

// ErrInvalidCommand reports input that is not a recognized command.
// Rendered as a diagnostic, never fatal.
var ErrInvalidCommand = errors.New("invalid command")

// Command is one parsed input line. The set is closed: Attach,
// Detach, or Help.
type Command interface {
	isCommand()
}

// Attach requests loading a firmware image's decode table.
type Attach struct {
	Path string
}

// Detach requests dropping the current decode table.
type Detach struct{}

// Help requests the command reference.
type Help struct{}

func (Attach) isCommand() {}
func (Detach) isCommand() {}
func (Help) isCommand()   {}

// ParseCommand tokenizes an input line on whitespace and returns the
// command it names. Anything unrecognized — including an empty line,
// a known verb with the wrong argument count, or an unknown verb —
// is ErrInvalidCommand.
func ParseCommand(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, ErrInvalidCommand
	}

	switch tokens[0] {
	case "attach":
		if len(tokens) != 2 {
			return nil, ErrInvalidCommand
		}
		return Attach{Path: tokens[1]}, nil
	case "detach":
		if len(tokens) != 1 {
			return nil, ErrInvalidCommand
		}
		return Detach{}, nil
	case "help":
		if len(tokens) != 1 {
			return nil, ErrInvalidCommand
		}
		return Help{}, nil
	default:
		return nil, ErrInvalidCommand
	}
}
