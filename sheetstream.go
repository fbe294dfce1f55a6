// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package sheetstream holds the shared surface of the spreadsheet
// writers: the Writer/Sheet interfaces, the style and column value
// types, the grid ceilings of the target format, and the error
// taxonomy every backend reports.
//
// The writers are write-only and string-valued: a sheet is a grid of
// text cells, appended and never read back.
package sheetstream

import (
	"errors"
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
//
// A Writer MAY require sheets to be written one at a time, in
// creation order, and should document if it does.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...string) error
}

// Style is a style for a column/row/cell.
type Style struct {
	// Format is the number format
	Format string
	// FontBold is true if the font is bold
	FontBold bool
}

// Column contains the Name of the column and header's style and column's style.
type Column struct {
	Name           string
	Header, Column Style
}

// Grid and document ceilings of the target format. They are fixed by
// the file format, not by any backend; a backend for a different
// container must carry its own set.
const (
	// MaxRowCount is the number of maximum rows.
	MaxRowCount = 1_048_576
	// MaxColumnCount is the number of maximum columns ("XFD").
	MaxColumnCount = 16_384
	// MaxSheetCount is the maximum number of sheets in one document.
	MaxSheetCount = 255
)

var (
	ErrTooManyRows    = errors.New("too many rows")
	ErrTooManySheets  = errors.New("too many sheets")
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	ErrDuplicateRow   = errors.New("row already written")
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrClosed         = errors.New("already closed")
	ErrNoSheet        = errors.New("no active sheet")
	ErrBadDestination = errors.New("bad destination")
)
