// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package memxlsx writes xlsx workbooks through excelize, fully in
// memory. It trades the streaming backend's bounded memory for
// random sheet access and per-column styling; the protocol checks
// (unique names, sheet and row ceilings) match the streaming backend,
// so the two are interchangeable behind sheetstream.Writer for
// documents that fit in memory.
package memxlsx

import (
	"fmt"
	"io"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/UNO-SOFT/sheetstream"
)

var _ = (sheetstream.Writer)((*Writer)(nil))

type Writer struct {
	w      io.Writer
	xl     *excelize.File
	styles map[string]int
	names  map[string]struct{}
	sheetN int
	mu     sync.Mutex
}

type Sheet struct {
	xl   *excelize.File
	Name string
	row  int64
	mu   sync.Mutex
}

// NewWriter returns a new sheetstream.Writer that collects the whole
// document in memory and serializes it on Close.
//
// This writer allows concurrent writes to separate sheets.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, xl: excelize.NewFile(), names: make(map[string]struct{})}
}

func (xlw *Writer) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	_, err := xl.WriteTo(w)
	return err
}

func (xlw *Writer) NewSheet(name string, columns []sheetstream.Column) (sheetstream.Sheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return nil, fmt.Errorf("NewSheet %q: %w", name, sheetstream.ErrClosed)
	}
	if _, ok := xlw.names[name]; ok {
		return nil, fmt.Errorf("%q: %w", name, sheetstream.ErrDuplicateSheet)
	}
	if xlw.sheetN >= sheetstream.MaxSheetCount {
		return nil, fmt.Errorf("%q would be sheet %d: %w", name, xlw.sheetN+1, sheetstream.ErrTooManySheets)
	}
	xlw.names[name] = struct{}{}
	xlw.sheetN++
	if xlw.sheetN == 1 { // first
		xlw.xl.SetSheetName("Sheet1", name)
	} else {
		if _, err := xlw.xl.NewSheet(name); err != nil {
			return nil, err
		}
	}
	var hasHeader bool
	for i, c := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		s, err := xlw.getStyle(c.Column)
		if err != nil {
			return nil, err
		}
		if s != 0 {
			if err = xlw.xl.SetColStyle(name, col, s); err != nil {
				return nil, err
			}
		}
		if s, err = xlw.getStyle(c.Header); err != nil {
			return nil, err
		}
		if s != 0 {
			if err = xlw.xl.SetCellStyle(name, col+"1", col+"1", s); err != nil {
				return nil, err
			}
		}
		if c.Name != "" {
			hasHeader = true
			if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
				return nil, err
			}
		}
	}
	xls := &Sheet{xl: xlw.xl, Name: name}
	if hasHeader {
		xls.row++
	}
	return xls, nil
}

func (xlw *Writer) getStyle(style sheetstream.Style) (int, error) {
	if !style.FontBold && style.Format == "" {
		return 0, nil
	}
	k := fmt.Sprintf("%t\t%s", style.FontBold, style.Format)
	if s, ok := xlw.styles[k]; ok {
		return s, nil
	}
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	s, err := xlw.xl.NewStyle(&st)
	if err != nil {
		return 0, err
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[k] = s
	return s, nil
}

func (xls *Sheet) Close() error { return nil }

// AppendRow writes values as the next row of the sheet.
func (xls *Sheet) AppendRow(values ...string) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.row >= sheetstream.MaxRowCount {
		return sheetstream.ErrTooManyRows
	}
	xls.row++
	for i, v := range values {
		axis, err := excelize.CoordinatesToCellName(i+1, int(xls.row))
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, int(xls.row), err)
		}
		if err = xls.xl.SetCellStr(xls.Name, axis, v); err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
	}
	return nil
}
