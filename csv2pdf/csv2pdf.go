// Copyright 2021, 2026 Tamás Gulácsi. All rights reserved.

// Command csv2pdf renders a CSV file as a PDF table.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/UNO-SOFT/sheetstream"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		slog.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("csv2pdf", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", sheetstream.EncName, "csv charset name")
	flagOut := fs.String("o", "", "output file name (default input file + .pdf)")
	flagColor := fs.String("alternate-color", "E6E6E6", "background of every second row, RRGGBB hex")
	flagLandscape := fs.Bool("L", false, "landscape orientation (default: portrait)")
	flagFontSize := fs.Float64("f", 8, "font size")
	flagPrintPagenum := fs.Bool("print-pagenum", false, "print page numbers")

	app := ffcli.Command{Name: "csv2pdf", FlagSet: fs,
		ShortUsage: "csv2pdf [flags] file.csv",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			altColor, err := parseColor(*flagColor)
			if err != nil {
				return err
			}
			cr, err := sheetstream.OpenCsv(args[0], *flagEnc)
			if err != nil {
				return err
			}
			defer cr.Close()

			headers, err := cr.Read()
			if err != nil {
				return err
			}
			logger.Debug("headers", "headers", headers)

			builder := config.NewBuilder().
				WithMaxGridSize(len(headers)).
				WithDefaultFont(&props.Font{Size: *flagFontSize})
			if *flagLandscape {
				builder = builder.WithOrientation(orientation.Horizontal)
			}
			if *flagPrintPagenum {
				builder = builder.WithPageNumber()
			}
			m := maroto.New(builder.Build())

			rowHeight := *flagFontSize / 2
			m.AddRow(rowHeight, textCols(headers, props.Text{Size: *flagFontSize, Style: fontstyle.Bold})...)
			var n int
			for {
				record, err := cr.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					return err
				}
				r := m.AddRow(rowHeight, textCols(record, props.Text{Size: *flagFontSize})...)
				if n%2 == 1 {
					r.WithStyle(&props.Cell{BackgroundColor: &altColor})
				}
				n++
			}
			logger.Debug("rendered", "rows", n)

			doc, err := m.Generate()
			if err != nil {
				return err
			}
			fn := *flagOut
			if fn == "" {
				fn = strings.TrimSuffix(args[0], ".csv") + ".pdf"
			}
			return doc.Save(fn)
		},
	}
	return app.ParseAndRun(context.Background(), os.Args[1:])
}

func textCols(values []string, ps props.Text) []core.Col {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		cols[i] = text.NewCol(1, v, ps)
	}
	return cols
}

func parseColor(s string) (props.Color, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil || len(b) != 3 {
		return props.Color{}, fmt.Errorf("%q: want RRGGBB hex color (%w)", s, err)
	}
	return props.Color{Red: int(b[0]), Green: int(b[1]), Blue: int(b[2])}, nil
}
