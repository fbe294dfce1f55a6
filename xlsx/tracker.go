// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"

	"github.com/UNO-SOFT/sheetstream"
)

// rowTracker records which 1-based rows of the active sheet have been
// committed to the stream. A committed row can never be written
// again: the serialization is append-only, so a second <row> element
// for the same index could not replace the first.
type rowTracker map[int]struct{}

// check fails if row is already committed.
func (t rowTracker) check(row int) error {
	if _, ok := t[row]; ok {
		return fmt.Errorf("row %d: %w", row, sheetstream.ErrDuplicateRow)
	}
	return nil
}

// mark commits row. Only rows with at least one emitted cell are
// marked; a validated but empty write leaves the tracker untouched.
func (t rowTracker) mark(row int) { t[row] = struct{}{} }
