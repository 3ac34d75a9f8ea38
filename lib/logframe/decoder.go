// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logframe

import (
	"bytes"
	"errors"
)

var (
	// ErrUnexpectedEOF reports that no complete frame is buffered
	// yet. Not a failure: the caller stops decoding until the next
	// delivery.
	ErrUnexpectedEOF = errors.New("incomplete frame buffered")

	// ErrMalformed reports a frame that cannot be decoded. The bad
	// frame's bytes have been consumed through its delimiter, so the
	// next Decode starts at the next frame boundary.
	ErrMalformed = errors.New("malformed log frame")
)

// maxBuffered caps the decode buffer. A peer that streams garbage
// without ever sending a delimiter would otherwise grow the buffer
// forever; past the cap the oldest bytes are discarded and the
// truncated frame surfaces as ErrMalformed on its delimiter.
const maxBuffered = 64 * 1024

// StreamDecoder decodes a byte stream into frames against one table.
// Create one per attach with Table.NewStreamDecoder; on re-attach,
// build a new one rather than reusing the old (partial-frame state is
// never carried across tables).
//
// A StreamDecoder is owned by the consumer goroutine and is not safe
// for concurrent use.
type StreamDecoder struct {
	table *Table
	buf   []byte
}

// NewStreamDecoder creates a decoder with empty buffer state.
func (t *Table) NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{table: t}
}

// Received appends raw bytes from the debug transport to the decode
// buffer. No decoding happens here.
func (d *StreamDecoder) Received(data []byte) {
	d.buf = append(d.buf, data...)
	if excess := len(d.buf) - maxBuffered; excess > 0 {
		d.buf = d.buf[excess:]
	}
}

// Decode attempts to produce exactly one frame from the buffered
// bytes.
//
// The debug transport promises at most one complete frame per
// delivery, so callers invoke Decode once per Received. The decoder
// does not depend on that promise: frames that arrive back to back
// simply decode on successive calls.
func (d *StreamDecoder) Decode() (Frame, error) {
	// Empty frames (consecutive delimiters) are transport idle noise.
	start := 0
	for start < len(d.buf) && d.buf[start] == frameDelimiter {
		start++
	}
	if start > 0 {
		d.buf = d.buf[start:]
	}

	end := bytes.IndexByte(d.buf, frameDelimiter)
	if end < 0 {
		return Frame{}, ErrUnexpectedEOF
	}

	encoded := d.buf[:end]
	d.buf = d.buf[end+1:]

	payload, err := decodeChunked(encoded)
	if err != nil {
		return Frame{}, err
	}
	return d.table.frameFromPayload(payload)
}
