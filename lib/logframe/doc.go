// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

// Package logframe decodes the EC firmware's compact binary log
// protocol into human-readable frames.
//
// The firmware never ships log text over the wire. Each log statement
// is compiled down to a 16-bit index into a string table that stays in
// the firmware image, and a frame on the wire is just that index plus
// a 64-bit monotonic timestamp, packed with a reverse zero-elision
// encoding and terminated by a 0x00 delimiter (see wire.go). The host
// loads the string table from the image's metadata section once at
// attach time and reverses the mapping.
//
// Decoding is stateful: the debug transport delivers raw byte runs
// that may split a frame across deliveries, so a StreamDecoder buffers
// input across Received calls and produces at most one Frame per
// Decode call. A malformed frame is consumed through its delimiter and
// reported as ErrMalformed; decoding resynchronizes at the next frame
// boundary.
package logframe
