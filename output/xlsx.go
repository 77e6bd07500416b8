package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the deltas.
const SheetName = "deltas"

// ErrSheetFull is returned once a workbook has no rows left.
var ErrSheetFull = errors.New("worksheet row limit reached")

type xlsxSink struct {
	out  io.Writer
	file *excelize.File
	sw   *excelize.StreamWriter
	row  int
}

// NewXLSX returns a Sink that streams deltas into a workbook and writes it
// to w on Close. Row 1 holds a header; a sheet takes at most
// excelize.TotalRows-1 deltas.
func NewXLSX(w io.Writer) (Sink, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", []interface{}{"delta"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &xlsxSink{out: w, file: f, sw: sw, row: 1}, nil
}

func (s *xlsxSink) Put(delta uint64) error {
	if s.row >= excelize.TotalRows {
		return ErrSheetFull
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.sw.SetRow(cell, []interface{}{delta})
}

func (s *xlsxSink) Close() error {
	defer s.file.Close()
	if err := s.sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := s.file.WriteTo(s.out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
