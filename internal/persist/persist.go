// Package persist implements the tilde-delimited record format the
// engine saves and loads: one record per cell,
//
//	<col> <row> [=]<expr_text>~
//
// Fields are ASCII-space separated; only the first two spaces are
// structural (they end col and row), so the expression text field may
// itself contain spaces. The record separator '~' makes the stream
// self-framing: bufio.Scanner with a custom SplitFunc reads records off
// it the way yamitzky-xlrd-go's biff/compdoc readers hand fixed records
// to a callback, adapted here to a text delimiter instead of a binary
// length prefix.
package persist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned when a record does not fit
// "<col> <row> <content>".
var ErrMalformedRecord = errors.New("persist: malformed record")

// Record is one decoded cell: its position and raw contents field,
// exactly as it would be handed to sheet.SetCell (a leading '=' still
// attached if present).
type Record struct {
	Col      int
	Row      int
	Contents string
}

// Encode writes one record per entry in records, in the order given,
// each terminated by '~'.
func Encode(w io.Writer, records []Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%d %d %s~", r.Col, r.Row, r.Contents); err != nil {
			return fmt.Errorf("persist: encode: %w", err)
		}
	}
	return nil
}

// splitTilde is a bufio.SplitFunc that tokenizes on '~', tolerating a
// stream with or without a trailing separator on its final record.
func splitTilde(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, '~'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	if atEOF {
		return 0, nil, io.EOF
	}
	return 0, nil, nil
}

// Decode reads every '~'-terminated record from r and parses it into a
// Record. It returns ErrMalformedRecord (wrapped with the offending
// text) on the first record that doesn't fit the wire format; the
// caller decides whether that aborts the whole load.
func Decode(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(splitTilde)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var records []Record
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		rec, err := parseRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("persist: decode: %w", err)
	}
	return records, nil
}

// parseRecord splits "<col> <row> <content>" on exactly the first two
// spaces, leaving everything after the second space — including any
// further embedded spaces — as Contents.
func parseRecord(raw string) (Record, error) {
	firstSpace := strings.IndexByte(raw, ' ')
	if firstSpace < 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, raw)
	}
	rest := raw[firstSpace+1:]
	secondSpace := strings.IndexByte(rest, ' ')
	if secondSpace < 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, raw)
	}

	colText := raw[:firstSpace]
	rowText := rest[:secondSpace]
	contents := rest[secondSpace+1:]

	col, err := strconv.Atoi(colText)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad column %q", ErrMalformedRecord, colText)
	}
	row, err := strconv.Atoi(rowText)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad row %q", ErrMalformedRecord, rowText)
	}

	return Record{Col: col, Row: row, Contents: contents}, nil
}
