// Package output renders deltas produced by the differencer.
package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format selects how deltas are rendered.
type Format string

const (
	// FormatText writes one unsigned decimal per line.
	FormatText Format = "text"
	// FormatBinary writes one native-endian u64 record per delta.
	FormatBinary Format = "binary"
	// FormatXLSX writes a workbook with one delta per row.
	FormatXLSX Format = "xlsx"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatBinary, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Sink receives deltas. Close flushes buffered output; it does not close
// the underlying writer.
type Sink interface {
	Put(delta uint64) error
	Close() error
}

// New returns a Sink rendering format to w.
func New(format Format, w io.Writer) (Sink, error) {
	switch format {
	case FormatText, "":
		return NewText(w), nil
	case FormatBinary:
		return NewBinary(w), nil
	case FormatXLSX:
		return NewXLSX(w)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

type textSink struct {
	w       *bufio.Writer
	scratch []byte
}

// NewText returns a Sink writing each delta as a decimal line.
func NewText(w io.Writer) Sink {
	return &textSink{w: bufio.NewWriter(w), scratch: make([]byte, 0, 24)}
}

func (s *textSink) Put(delta uint64) error {
	s.scratch = strconv.AppendUint(s.scratch[:0], delta, 10)
	s.scratch = append(s.scratch, '\n')
	_, err := s.w.Write(s.scratch)
	return err
}

func (s *textSink) Close() error { return s.w.Flush() }

type binarySink struct {
	w       *bufio.Writer
	scratch []byte
}

// NewBinary returns a Sink writing each delta as an 8 byte native-endian
// record, whatever the width of the source records.
func NewBinary(w io.Writer) Sink {
	return &binarySink{w: bufio.NewWriter(w), scratch: make([]byte, 0, 8)}
}

func (s *binarySink) Put(delta uint64) error {
	s.scratch = binary.NativeEndian.AppendUint64(s.scratch[:0], delta)
	_, err := s.w.Write(s.scratch)
	return err
}

func (s *binarySink) Close() error { return s.w.Flush() }
