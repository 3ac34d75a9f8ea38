// Copyright 2026 The Ecmon Authors
// SPDX-License-Identifier: Apache-2.0

package logframe

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/ec-foundation/ecmon/lib/codec"
)

// SectionName is the ELF section holding the log decode table in an
// EC firmware image. Firmware builds produce the section payload with
// EncodeTable and splice it in with objcopy:
//
//	objcopy --add-section .eclog=table.bin firmware.elf
const SectionName = ".eclog"

// tableVersion is the section payload version this host understands.
const tableVersion = 1

var (
	// ErrNoTable reports a metadata blob without a usable decode
	// table: not an ELF at all, or an ELF missing the section.
	ErrNoTable = errors.New("no log decode table found")

	// ErrBadTable reports a decode table section that exists but
	// cannot be decoded.
	ErrBadTable = errors.New("malformed log decode table")
)

// Level classifies a log statement. The empty level is valid: the
// firmware emits unleveled frames for raw prints.
type Level string

const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one string-table entry: the compiled-out log text and its
// level.
type Entry struct {
	Level   Level  `cbor:"level,omitempty"`
	Message string `cbor:"message"`
}

// tableImage is the CBOR shape of the section payload.
type tableImage struct {
	Version     int              `cbor:"version"`
	TimestampHz uint64           `cbor:"timestamp_hz"`
	Entries     map[uint16]Entry `cbor:"entries"`
}

// Table is the immutable decode table for one firmware image. It is
// loaded once at attach time and replaced wholesale on re-attach,
// never partially reset.
type Table struct {
	timestampHz uint64
	entries     map[uint16]Entry
}

// NewTable builds a table directly from entries. timestampHz is the
// tick rate of frame timestamps; zero means the firmware sends no
// meaningful timestamps. Used by the mock source and by firmware
// build tooling; hosts normally go through ParseMetadata.
func NewTable(timestampHz uint64, entries map[uint16]Entry) *Table {
	copied := make(map[uint16]Entry, len(entries))
	for index, entry := range entries {
		copied[index] = entry
	}
	return &Table{timestampHz: timestampHz, entries: copied}
}

// TimestampHz returns the tick rate of frame timestamps, or zero when
// frames carry no meaningful timestamp.
func (t *Table) TimestampHz() uint64 { return t.timestampHz }

// Len returns the number of string-table entries.
func (t *Table) Len() int { return len(t.entries) }

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// ParseMetadata loads a decode table from a firmware metadata blob.
// An ELF image is searched for the .eclog section; anything else is
// treated as a bare section payload. Beyond the section lookup the
// ELF is opaque — symbol tables and program headers are never touched.
func ParseMetadata(blob []byte) (*Table, error) {
	data := blob
	if bytes.HasPrefix(blob, elfMagic) {
		file, err := elf.NewFile(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable ELF image: %v", ErrNoTable, err)
		}
		section := file.Section(SectionName)
		if section == nil {
			return nil, fmt.Errorf("%w: ELF image has no %s section", ErrNoTable, SectionName)
		}
		data, err = section.Data()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s section: %v", ErrBadTable, SectionName, err)
		}
	}
	return decodeSection(data)
}

// EncodeTable produces the section payload for a table:
// zstd-compressed deterministic CBOR.
func EncodeTable(table *Table) ([]byte, error) {
	image := tableImage{
		Version:     tableVersion,
		TimestampHz: table.timestampHz,
		Entries:     table.entries,
	}
	encoded, err := codec.Marshal(image)
	if err != nil {
		return nil, fmt.Errorf("encoding decode table: %w", err)
	}
	return sectionCompressor.EncodeAll(encoded, nil), nil
}

// decodeSection unpacks a section payload into a Table.
func decodeSection(data []byte) (*Table, error) {
	decompressed, err := sectionDecompressor.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing section: %v", ErrBadTable, err)
	}

	var image tableImage
	if err := codec.Unmarshal(decompressed, &image); err != nil {
		return nil, fmt.Errorf("%w: decoding section: %v", ErrBadTable, err)
	}
	if image.Version != tableVersion {
		return nil, fmt.Errorf("%w: unsupported table version %d", ErrBadTable, image.Version)
	}
	if len(image.Entries) == 0 {
		return nil, fmt.Errorf("%w: table has no entries", ErrBadTable)
	}
	return NewTable(image.TimestampHz, image.Entries), nil
}

// Shared zstd machinery. EncodeAll/DecodeAll on these are safe for
// concurrent use.
var (
	sectionCompressor   *zstd.Encoder
	sectionDecompressor *zstd.Decoder
)

func init() {
	var err error
	sectionCompressor, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("logframe: zstd encoder initialization failed: " + err.Error())
	}
	sectionDecompressor, err = zstd.NewReader(nil)
	if err != nil {
		panic("logframe: zstd decoder initialization failed: " + err.Error())
	}
}
