// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx writes xlsx workbooks as a forward-only stream.
//
// Rows and sheets are serialized the moment they are written and are
// never buffered whole, so memory use does not grow with the
// document. The price is a strict protocol: at most one sheet accepts
// writes at a time, each row of a sheet can be written at most once,
// previously finished elements can never be revisited, and nothing
// can be added after Close. Any violation is reported at the call
// that commits it; the package never retries, because a failed
// append cannot be undone.
package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/UNO-SOFT/sheetstream"
)

// Ext is the only destination suffix New accepts.
const Ext = ".xlsx"

type state uint8

const (
	stateBuilding state = iota
	stateSheetActive
	stateClosed
)

// Workbook writes one xlsx document to a destination file.
//
// A Workbook is a single pair of write cursors (the workbook envelope
// and the active sheet) and has no locking of its own; it must not be
// used from multiple goroutines without external synchronization.
type Workbook struct {
	pkg    *pkgWriter
	wbBuf  bytes.Buffer
	wbEmit *emitter // workbook envelope, rendered into wbBuf

	state  state
	names  map[string]struct{}
	sheetN int

	// active sheet, set only in stateSheetActive
	sheet     *emitter
	sheetName string
	sheetRID  string
	rows      rowTracker
}

var _ sheetstream.Writer = (*Workbook)(nil)

// New creates the destination file and starts the workbook envelope.
//
// All destination problems are reported together in one error rather
// than one at a time: a missing parent directory, a suffix other than
// ".xlsx" and an already existing file each contribute a cause
// wrapping sheetstream.ErrBadDestination.
func New(dest string) (*Workbook, error) {
	var errs []error
	if fi, err := os.Stat(filepath.Dir(dest)); err != nil || !fi.IsDir() {
		errs = append(errs, fmt.Errorf("%q: parent directory does not exist: %w", dest, sheetstream.ErrBadDestination))
	}
	if filepath.Ext(dest) != Ext {
		errs = append(errs, fmt.Errorf("%q: not a %q file: %w", dest, Ext, sheetstream.ErrBadDestination))
	}
	if _, err := os.Stat(dest); err == nil {
		errs = append(errs, fmt.Errorf("%q: already exists: %w", dest, sheetstream.ErrBadDestination))
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	fh, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	wb := &Workbook{pkg: newPkgWriter(fh), names: make(map[string]struct{})}
	wb.wbEmit = newEmitter(&wb.wbBuf)
	wb.wbEmit.Start("workbook", attr{"xmlns", nsMain}, attr{"xmlns:r", nsRel})
	wb.wbEmit.Start("sheets")
	return wb, nil
}

// AddSheet finishes the active sheet, if any, and opens a new one
// that becomes the only target of the write calls.
func (wb *Workbook) AddSheet(name string) error {
	if wb.state == stateClosed {
		return fmt.Errorf("AddSheet %q: %w", name, sheetstream.ErrClosed)
	}
	if err := wb.FinishSheet(); err != nil {
		return err
	}
	if _, ok := wb.names[name]; ok {
		return fmt.Errorf("%q: %w", name, sheetstream.ErrDuplicateSheet)
	}
	if wb.sheetN >= sheetstream.MaxSheetCount {
		return fmt.Errorf("%q would be sheet %d: %w", name, wb.sheetN+1, sheetstream.ErrTooManySheets)
	}
	w, rid, err := wb.pkg.addWorksheet()
	if err != nil {
		return err
	}
	wb.names[name] = struct{}{}
	wb.sheetN++
	wb.sheet = newEmitter(w)
	wb.sheet.Start("worksheet", attr{"xmlns", nsMain})
	wb.sheet.Start("sheetData")
	wb.sheetName, wb.sheetRID = name, rid
	wb.rows = make(rowTracker)
	wb.state = stateSheetActive
	return nil
}

// FinishSheet closes the elements of the active sheet, flushes its
// part and appends the sheet descriptor to the workbook envelope. It
// is a no-op when no sheet is active. After FinishSheet the sheet can
// never be written again.
func (wb *Workbook) FinishSheet() error {
	if wb.state != stateSheetActive {
		return nil
	}
	if err := wb.sheet.Close(); err != nil {
		return fmt.Errorf("finish %q: %w", wb.sheetName, err)
	}
	wb.wbEmit.Start("sheet",
		attr{"name", wb.sheetName},
		attr{"sheetId", strconv.Itoa(wb.sheetN)},
		attr{"state", "visible"},
		attr{"r:id", wb.sheetRID},
	)
	if err := wb.wbEmit.End("sheet"); err != nil {
		return err
	}
	wb.sheet, wb.sheetName, wb.sheetRID, wb.rows = nil, "", "", nil
	wb.state = stateBuilding
	return nil
}

// Close finishes the active sheet, completes the workbook envelope
// and commits the package. Closing an already closed workbook is a
// no-op, so "defer wb.Close()" guarantees a well-formed file on every
// exit path while an explicit Close still reports its error.
func (wb *Workbook) Close() error {
	if wb == nil || wb.state == stateClosed {
		return nil
	}
	if err := wb.FinishSheet(); err != nil {
		return err
	}
	wb.state = stateClosed
	if err := wb.wbEmit.Close(); err != nil {
		return err
	}
	return wb.pkg.finalize(wb.wbBuf.Bytes())
}

// Style registers s with the document and returns its reference.
// Equal styles share one reference; the zero style is NoStyle.
func (wb *Workbook) Style(s sheetstream.Style) (StyleRef, error) {
	if wb.state == stateClosed {
		return NoStyle, sheetstream.ErrClosed
	}
	return wb.pkg.style(s), nil
}

func (wb *Workbook) writeState() error {
	switch wb.state {
	case stateSheetActive:
		return nil
	case stateClosed:
		return sheetstream.ErrClosed
	default:
		return sheetstream.ErrNoSheet
	}
}

// WriteRow writes values into one row of the active sheet, left to
// right from the 0-based (row, col). The far cell of the row is
// bounds-checked before anything is emitted: on error the stream is
// untouched and the row stays unwritten. An empty values slice is
// validated the same way but emits nothing and does not commit the
// row.
func (wb *Workbook) WriteRow(values []string, row, col int) error {
	return wb.WriteRowStyle(values, row, col, NoStyle)
}

// WriteRowStyle is WriteRow with every cell carrying style.
func (wb *Workbook) WriteRowStyle(values []string, row, col int, style StyleRef) error {
	if err := wb.writeState(); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	r := row + 1
	far := col + 1
	if len(values) > 0 {
		far = col + len(values)
	}
	if err := checkBounds(r, far); err != nil {
		return err
	}
	if err := wb.rows.check(r); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	if err := wb.emitRow(r, col+1, style, values...); err != nil {
		return err
	}
	wb.rows.mark(r)
	return nil
}

// WriteColumn writes values top to bottom from the 0-based
// (row, col), one single-cell row per value. The far cell is
// bounds-checked up front; the row tracker is consulted per value, so
// a duplicate row mid-sequence fails the call and leaves the earlier
// rows committed (a valid prefix).
func (wb *Workbook) WriteColumn(values []string, row, col int) error {
	return wb.WriteColumnStyle(values, row, col, NoStyle)
}

// WriteColumnStyle is WriteColumn with every cell carrying style.
func (wb *Workbook) WriteColumnStyle(values []string, row, col int, style StyleRef) error {
	if err := wb.writeState(); err != nil {
		return fmt.Errorf("write column %d: %w", col, err)
	}
	far := row + 1
	if len(values) > 0 {
		far = row + len(values)
	}
	if err := checkBounds(far, col+1); err != nil {
		return err
	}
	for i, v := range values {
		r := row + 1 + i
		if err := wb.rows.check(r); err != nil {
			return err
		}
		if err := wb.emitRow(r, col+1, style, v); err != nil {
			return err
		}
		wb.rows.mark(r)
	}
	return nil
}

// WriteAllData writes each element of rows as one row, starting at
// the 0-based (row, col) and advancing one row per element.
func (wb *Workbook) WriteAllData(rows [][]string, row, col int) error {
	if err := wb.writeState(); err != nil {
		return fmt.Errorf("write all data at row %d: %w", row, err)
	}
	for i, values := range rows {
		if err := wb.WriteRow(values, row+i, col); err != nil {
			return err
		}
	}
	return nil
}

// emitRow appends one <row> element holding one inline-string cell
// per value, the first cell at the 1-based (r, c).
func (wb *Workbook) emitRow(r, c int, style StyleRef, values ...string) error {
	e := wb.sheet
	e.Start("row", attr{"r", strconv.Itoa(r)})
	for i, v := range values {
		attrs := make([]attr, 0, 3)
		attrs = append(attrs, attr{"r", cellRef(r, c+i)})
		if style != NoStyle {
			attrs = append(attrs, attr{"s", strconv.Itoa(int(style))})
		}
		attrs = append(attrs, attr{"t", "inlineStr"})
		e.Start("c", attrs...)
		e.Start("is")
		e.Start("t")
		e.Text(v)
		if err := e.End("t"); err != nil {
			return err
		}
		if err := e.End("is"); err != nil {
			return err
		}
		if err := e.End("c"); err != nil {
			return err
		}
	}
	if err := e.End("row"); err != nil {
		return err
	}
	return e.Flush()
}
