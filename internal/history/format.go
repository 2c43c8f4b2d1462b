package history

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// On-disk layout, little-endian:
//
//	header:  "CHST" | version (1 byte)
//	record:  timestamp int64 | is_password uint8 | length uint32 | content
//
// Records repeat until end of file. A new layout must use a new version byte;
// readers treat unknown versions as an empty history.
const (
	magic    = "CHST"
	formatV1 = byte(1)

	headerSize       = len(magic) + 1
	recordHeaderSize = 8 + 1 + 4
)

// ErrTruncated reports a history file that ends in the middle of a record.
var ErrTruncated = errors.New("history file truncated mid-record")

func encode(items []Entry) ([]byte, error) {
	size := headerSize
	for _, e := range items {
		size += recordHeaderSize + len(e.Content)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, magic...)
	buf = append(buf, formatV1)
	for _, e := range items {
		if uint64(len(e.Content)) > math.MaxUint32 {
			return nil, fmt.Errorf("entry of %d bytes exceeds record limit", len(e.Content))
		}
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Timestamp))
		var flag byte
		if e.IsPassword {
			flag = 1
		}
		buf = append(buf, flag)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Content)))
		buf = append(buf, e.Content...)
	}
	return buf, nil
}

// decode parses a history file. A short or unrecognised header yields an
// empty history and no error; a record cut off by end of file yields
// ErrTruncated.
func decode(data []byte) ([]Entry, error) {
	if len(data) < headerSize || string(data[:len(magic)]) != magic {
		return nil, nil
	}
	switch data[len(magic)] {
	case formatV1:
		return decodeV1(data[headerSize:])
	default:
		return nil, nil
	}
}

func decodeV1(b []byte) ([]Entry, error) {
	var items []Entry
	off := 0
	for off < len(b) {
		if len(b)-off < recordHeaderSize {
			return nil, fmt.Errorf("%w: record header at offset %d", ErrTruncated, headerSize+off)
		}
		ts := int64(binary.LittleEndian.Uint64(b[off:]))
		isPassword := b[off+8] != 0
		n := binary.LittleEndian.Uint32(b[off+9:])
		off += recordHeaderSize

		if uint64(n) > uint64(len(b)-off) {
			return nil, fmt.Errorf("%w: %d content bytes at offset %d", ErrTruncated, n, headerSize+off)
		}
		content := strings.ToValidUTF8(string(b[off:off+int(n)]), "\uFFFD")
		off += int(n)

		items = append(items, Entry{
			Timestamp:  ts,
			Content:    content,
			IsPassword: isPassword,
		})
	}
	return items, nil
}
