// Package udf decodes BME gas-sensor UDF logs: an ASCII metadata header
// describing per-field layout, a fixed delimiter, and a binary payload of
// fixed-size little-endian records.
//
// The metadata declares field names, sizes and type specs, but it does not
// reliably describe the physical record layout. Record framing (header size
// and steady-state record size) is inferred from the recurrence of the 0x00FF
// marker bytes in the payload; see framing.go. Decoding is failure tolerant:
// a malformed field never aborts its record, a short tail record never aborts
// the file.
package udf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MetadataDelimiter separates the ASCII metadata header from the binary
// payload: three consecutive CRLF pairs.
var MetadataDelimiter = []byte("\r\n\r\n\r\n")

var (
	// ErrNoDelimiter is returned when the metadata delimiter is absent.
	// The file cannot be split and no partial output is produced.
	ErrNoDelimiter = errors.New("udf: metadata delimiter not found")

	// ErrNoFraming is returned when fewer than two marker occurrences are
	// found in the scan window, so record framing cannot be inferred.
	ErrNoFraming = errors.New("udf: too few markers to infer record framing")
)

// File is a split and header-parsed UDF file. Payload aliases the input
// buffer; callers must not mutate it while records are being decoded.
type File struct {
	Version string
	Fields  []FieldDescriptor
	Payload []byte
}

// Split separates raw UDF bytes at the metadata delimiter and parses the
// header text into a version string and field descriptors.
func Split(raw []byte) (*File, error) {
	pos := bytes.Index(raw, MetadataDelimiter)
	if pos < 0 {
		return nil, ErrNoDelimiter
	}

	// The header is line-oriented ASCII; invalid UTF-8 sequences are dropped
	// rather than rejected, matching the forgiving firmware writers.
	text := strings.ToValidUTF8(string(raw[:pos]), "")
	version, fields := ParseMetadata(text)

	return &File{
		Version: version,
		Fields:  fields,
		Payload: raw[pos+len(MetadataDelimiter):],
	}, nil
}

// ParseFile reads and splits a UDF file from disk.
func ParseFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("udf: read %s: %w", path, err)
	}
	f, err := Split(raw)
	if err != nil {
		return nil, fmt.Errorf("udf: parse %s: %w", path, err)
	}
	return f, nil
}
