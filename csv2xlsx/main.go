// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command csv2xlsx converts CSV files into one xlsx workbook, one
// sheet per input file, streaming the rows as they are read.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/sheetstream"
	"github.com/UNO-SOFT/sheetstream/memxlsx"
	"github.com/UNO-SOFT/sheetstream/xlsx"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", sheetstream.EncName, "csv charset name")
	flagOut := fs.String("o", "out.xlsx", "output file name")
	flagMem := fs.Bool("mem", false, "build the workbook in memory (allows overwriting the output)")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] [sheetname:]file.csv...",
		Exec: func(ctx context.Context, args []string) error {
			var w sheetstream.Writer
			var commit func() error
			if *flagMem {
				fh, err := os.Create(*flagOut)
				if err != nil {
					return err
				}
				defer fh.Close()
				mw := memxlsx.NewWriter(fh)
				defer mw.Close()
				w, commit = mw, func() error {
					if err := mw.Close(); err != nil {
						return err
					}
					return fh.Close()
				}
			} else {
				wb, err := xlsx.New(*flagOut)
				if err != nil {
					return err
				}
				defer wb.Close()
				w, commit = wb, wb.Close
			}
			logger.Debug("writing", "dest", *flagOut, "mem", *flagMem, "files", len(args))

			for i, arg := range args {
				sheetName := fmt.Sprintf("Sheet%d", i+1)
				fn := arg
				if j := strings.IndexByte(arg, ':'); j >= 0 {
					sheetName, fn = arg[:j], arg[j+1:]
				} else if fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
				}
				if err := copyFile(w, sheetName, *flagEnc, fn); err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
			}
			return commit()
		},
	}
	return app.ParseAndRun(context.Background(), os.Args[1:])
}

func copyFile(w sheetstream.Writer, sheetName, encName, fn string) error {
	cr, err := sheetstream.OpenCsv(fn, encName)
	if err != nil {
		return err
	}
	defer cr.Close()

	row, err := cr.Read()
	if err != nil {
		return err
	}
	cols := make([]sheetstream.Column, len(row))
	for i, name := range row {
		cols[i].Name = name
		cols[i].Header.FontBold = true
	}
	sheet, err := w.NewSheet(sheetName, cols)
	if err != nil {
		return err
	}
	var n int
	for {
		if row, err = cr.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if err = sheet.AppendRow(row...); err != nil {
			return err
		}
		n++
	}
	logger.Debug("sheet done", "name", sheetName, "rows", n)
	return sheet.Close()
}
