// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"testing"

	"github.com/UNO-SOFT/sheetstream"
)

func TestColName(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{sheetstream.MaxColumnCount, "XFD"},
	}
	for _, tt := range tests {
		if got := colName(tt.col); got != tt.want {
			t.Errorf("colName(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCellRef(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "A1"},
		{12, 2, "B12"},
		{100, 27, "AA100"},
	}
	for _, tt := range tests {
		if got := cellRef(tt.row, tt.col); got != tt.want {
			t.Errorf("cellRef(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		ok       bool
	}{
		{"min", 1, 1, true},
		{"below row ceiling", sheetstream.MaxRowCount - 1, 1, true},
		{"row ceiling", sheetstream.MaxRowCount, 1, false},
		{"below column ceiling", 1, sheetstream.MaxColumnCount - 1, true},
		{"column ceiling", 1, sheetstream.MaxColumnCount, false},
		{"zero row", 0, 1, false},
		{"zero column", 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkBounds(tt.row, tt.col)
			if tt.ok != (err == nil) {
				t.Fatalf("checkBounds(%d, %d) = %v, want ok=%t", tt.row, tt.col, err, tt.ok)
			}
			if err != nil && !errors.Is(err, sheetstream.ErrOutOfBounds) {
				t.Errorf("checkBounds(%d, %d) = %v, want ErrOutOfBounds", tt.row, tt.col, err)
			}
		})
	}
}
