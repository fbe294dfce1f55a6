// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetstream

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCsvSniffsSeparator(t *testing.T) {
	tests := []struct {
		name, content string
		want          []string
	}{
		{"comma", "a,b,c\n1,2,3\n", []string{"a", "b", "c"}},
		{"semicolon", "a;b;c\n1;2;3\n", []string{"a", "b", "c"}},
		{"tab", "a\tb\tc\n1\t2\t3\n", []string{"a", "b", "c"}},
		{"bom", "\xEF\xBB\xBFa;b\n1;2\n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := filepath.Join(t.TempDir(), "in.csv")
			if err := os.WriteFile(fn, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cr, err := OpenCsv(fn, "")
			if err != nil {
				t.Fatal(err)
			}
			defer cr.Close()
			row, err := cr.Read()
			if err != nil {
				t.Fatal(err)
			}
			if len(row) != len(tt.want) {
				t.Fatalf("fields = %q, want %q", row, tt.want)
			}
			for i := range row {
				if row[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, row[i], tt.want[i])
				}
			}
		})
	}
}

func TestGetEncoding(t *testing.T) {
	if enc, err := GetEncoding("utf-8"); err != nil || enc != nil {
		t.Errorf("utf-8 = (%v, %v), want (nil, nil)", enc, err)
	}
	if enc, err := GetEncoding("iso-8859-2"); err != nil || enc == nil {
		t.Errorf("iso-8859-2 = (%v, %v), want a decoder", enc, err)
	}
	if _, err := GetEncoding("no-such-charset"); err == nil {
		t.Error("unknown charset must fail")
	}
}
