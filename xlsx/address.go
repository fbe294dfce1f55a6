// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"strconv"

	"github.com/UNO-SOFT/sheetstream"
)

// colName returns the letter name of the 1-based column number in
// bijective base-26: there is no zero digit, so 26 is "Z" and 27 is
// "AA", not "A0".
func colName(col int) string {
	var buf [8]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// cellRef returns the cell reference of the 1-based coordinates, e.g.
// cellRef(12, 2) == "B12".
func cellRef(row, col int) string {
	return colName(col) + strconv.Itoa(row)
}

// checkBounds validates 1-based coordinates against the grid
// ceilings. Coordinates at the ceiling itself are rejected, the same
// way the in-memory backend counts its rows.
func checkBounds(row, col int) error {
	if row < 1 || row >= sheetstream.MaxRowCount {
		return fmt.Errorf("row %d: %w", row, sheetstream.ErrOutOfBounds)
	}
	if col < 1 || col >= sheetstream.MaxColumnCount {
		return fmt.Errorf("column %d: %w", col, sheetstream.ErrOutOfBounds)
	}
	return nil
}
