// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"

	"github.com/UNO-SOFT/sheetstream"
)

// NewSheet implements sheetstream.Writer on the streaming workbook.
//
// Sheets must be written one at a time, in creation order: the
// returned sheet appends rows sequentially and stops accepting them
// as soon as another sheet is created. When any column has a Name, a
// header row is written first; the header style of the first styled
// column applies to the whole header row, and per-column body styles
// are not supported by this backend.
func (wb *Workbook) NewSheet(name string, cols []sheetstream.Column) (sheetstream.Sheet, error) {
	var headerStyle sheetstream.Style
	var hasHeader bool
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
		if c.Name != "" {
			hasHeader = true
		}
		if headerStyle == (sheetstream.Style{}) {
			headerStyle = c.Header
		}
	}
	if err := wb.AddSheet(name); err != nil {
		return nil, err
	}
	sh := &appendSheet{wb: wb, name: name}
	if hasHeader {
		style, err := wb.Style(headerStyle)
		if err != nil {
			return nil, err
		}
		if err = wb.WriteRowStyle(header, 0, 0, style); err != nil {
			return nil, err
		}
		sh.row = 1
	}
	return sh, nil
}

// appendSheet adapts the indexed write calls to sequential appending.
type appendSheet struct {
	wb   *Workbook
	name string
	row  int // next 0-based row
}

// AppendRow writes values as the next row of the sheet.
func (sh *appendSheet) AppendRow(values ...string) error {
	if sh.wb.state != stateSheetActive || sh.wb.sheetName != sh.name {
		return fmt.Errorf("%q: %w", sh.name, sheetstream.ErrNoSheet)
	}
	if sh.row+1 >= sheetstream.MaxRowCount {
		return sheetstream.ErrTooManyRows
	}
	if err := sh.wb.WriteRow(values, sh.row, 0); err != nil {
		return err
	}
	sh.row++
	return nil
}

// Close finishes the sheet if it is still the active one.
func (sh *appendSheet) Close() error {
	if sh.wb.state == stateSheetActive && sh.wb.sheetName == sh.name {
		return sh.wb.FinishSheet()
	}
	return nil
}
