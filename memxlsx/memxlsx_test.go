// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package memxlsx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/UNO-SOFT/sheetstream"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	sheet, err := w.NewSheet("Data", []sheetstream.Column{
		{Name: "id", Header: sheetstream.Style{FontBold: true}},
		{Name: "name", Header: sheetstream.Style{FontBold: true}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = w.NewSheet("Data", nil); err == nil || !errors.Is(err, sheetstream.ErrDuplicateSheet) {
		t.Errorf("duplicate NewSheet = %v, want ErrDuplicateSheet", err)
	}
	if err = sheet.AppendRow("1", "one"); err != nil {
		t.Fatal(err)
	}
	if err = sheet.AppendRow("2", "two"); err != nil {
		t.Fatal(err)
	}
	if err = sheet.Close(); err != nil {
		t.Fatal(err)
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}

	xl, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer xl.Close()
	for cell, want := range map[string]string{"A1": "id", "B1": "name", "A2": "1", "B2": "one", "A3": "2", "B3": "two"} {
		if got, err := xl.GetCellValue("Data", cell); err != nil || got != want {
			t.Errorf("%s = %q (%v), want %q", cell, got, err, want)
		}
	}
}

func TestWriterClosed(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.NewSheet("S", nil); err == nil || !errors.Is(err, sheetstream.ErrClosed) {
		t.Errorf("NewSheet after Close = %v, want ErrClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}
