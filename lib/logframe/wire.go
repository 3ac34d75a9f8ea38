// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logframe

import (
	"encoding/binary"
	"fmt"
)

// Wire encoding.
//
// A frame payload is the little-endian u16 string-table index followed
// by the little-endian u64 timestamp. The payload is packed in 7-byte
// chunks: each chunk's nonzero bytes are emitted in order, followed by
// a header byte 0x80|mask whose mask bit i marks payload byte i of the
// chunk as zero (elided). The final chunk is zero-padded to 7 bytes
// before packing, so a decoded payload may carry up to 6 trailing pad
// zeros; the payload parser requires them to be zero and otherwise
// ignores them. Header bytes always have the high bit set and zeros
// never appear literally, so the encoded stream contains no 0x00 —
// which frees 0x00 to be the explicit end-of-frame delimiter.
//
// Decoding runs from the end of the encoded frame: the last byte is
// always a chunk header, which says how many literal bytes precede it.

const (
	// frameDelimiter terminates every encoded frame on the wire.
	frameDelimiter = 0x00

	// chunkSize is the number of payload bytes covered by one header.
	chunkSize = 7

	// payloadSize is the packed size of index + timestamp.
	payloadSize = 10
)

// EncodeFrame encodes one complete wire frame, delimiter included.
// The mock source uses it to fabricate firmware traffic; tests use it
// to build known-good input.
func EncodeFrame(index uint16, timestamp uint64) []byte {
	var payload [payloadSize]byte
	binary.LittleEndian.PutUint16(payload[0:2], index)
	binary.LittleEndian.PutUint64(payload[2:10], timestamp)

	encoded := appendChunked(nil, payload[:])
	return append(encoded, frameDelimiter)
}

// appendChunked packs payload onto dst using the chunk encoding above
// and returns the extended slice.
func appendChunked(dst, payload []byte) []byte {
	for start := 0; start < len(payload); start += chunkSize {
		var mask byte
		for i := 0; i < chunkSize; i++ {
			position := start + i
			if position >= len(payload) || payload[position] == 0 {
				mask |= 1 << i
				continue
			}
			dst = append(dst, payload[position])
		}
		dst = append(dst, 0x80|mask)
	}
	return dst
}

// decodeChunked unpacks an encoded frame (delimiter already stripped)
// back into its payload, including any trailing pad zeros. The input
// must not contain 0x00. Errors wrap ErrMalformed.
func decodeChunked(encoded []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrMalformed)
	}

	var chunks [][chunkSize]byte
	i := len(encoded) - 1
	for i >= 0 {
		header := encoded[i]
		if header&0x80 == 0 {
			return nil, fmt.Errorf("%w: literal byte 0x%02x where chunk header expected", ErrMalformed, header)
		}
		mask := header & 0x7f
		i--

		// Literals appear in payload order, so walking backwards
		// yields the highest nonzero position first.
		var chunk [chunkSize]byte
		for bit := chunkSize - 1; bit >= 0; bit-- {
			if mask&(1<<bit) != 0 {
				continue
			}
			if i < 0 {
				return nil, fmt.Errorf("%w: truncated chunk", ErrMalformed)
			}
			chunk[bit] = encoded[i]
			i--
		}
		chunks = append(chunks, chunk)
	}

	// Chunks were recovered last-to-first.
	payload := make([]byte, 0, chunkSize*len(chunks))
	for j := len(chunks) - 1; j >= 0; j-- {
		payload = append(payload, chunks[j][:]...)
	}
	return payload, nil
}
