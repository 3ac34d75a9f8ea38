// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logframe

import (
	"encoding/binary"
	"fmt"
)

// Frame is one complete decoded log record.
type Frame struct {
	// Index is the string-table index the firmware sent.
	Index uint16

	// Timestamp is the raw monotonic tick count. Meaningful only
	// when HasTimestamp reports true.
	Timestamp uint64

	// Level is the log level, or empty for unleveled frames.
	Level Level

	// Message is the log text. It may contain embedded newlines;
	// renderers split it into one display line per text line.
	Message string

	timestampHz uint64
}

// HasTimestamp reports whether the frame carries a meaningful
// timestamp (the firmware declared a tick rate in its decode table).
func (f Frame) HasTimestamp() bool { return f.timestampHz > 0 }

// DisplayTimestamp renders the timestamp as seconds with microsecond
// precision, or an empty string for frames without one.
func (f Frame) DisplayTimestamp() string {
	if !f.HasTimestamp() {
		return ""
	}
	return fmt.Sprintf("%.6f", float64(f.Timestamp)/float64(f.timestampHz))
}

// frameFromPayload interprets a decoded payload against the table.
// The payload carries up to chunkSize-1 pad zeros past the packed
// fields; anything nonzero there means the frame was damaged in
// transit. Errors wrap ErrMalformed.
func (t *Table) frameFromPayload(payload []byte) (Frame, error) {
	if len(payload) < payloadSize {
		return Frame{}, fmt.Errorf("%w: payload is %d bytes, need %d", ErrMalformed, len(payload), payloadSize)
	}
	for _, b := range payload[payloadSize:] {
		if b != 0 {
			return Frame{}, fmt.Errorf("%w: nonzero padding", ErrMalformed)
		}
	}

	index := binary.LittleEndian.Uint16(payload[0:2])
	entry, ok := t.entries[index]
	if !ok {
		return Frame{}, fmt.Errorf("%w: unknown string-table index %d", ErrMalformed, index)
	}

	return Frame{
		Index:       index,
		Timestamp:   binary.LittleEndian.Uint64(payload[2:10]),
		Level:       entry.Level,
		Message:     entry.Message,
		timestampHz: t.timestampHz,
	}, nil
}
