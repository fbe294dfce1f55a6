// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/flate"

	"github.com/UNO-SOFT/sheetstream"
)

// Part names and XML namespaces of the generated package.
const (
	contentTypesPart = "[Content_Types].xml"
	rootRelsPart     = "_rels/.rels"
	workbookPart     = "xl/workbook.xml"
	workbookRelsPart = "xl/_rels/workbook.xml.rels"
	stylesPart       = "xl/styles.xml"

	nsMain         = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRel          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRel       = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"

	ctWorkbook  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"

	relTypeOfficeDoc = nsRel + "/officeDocument"
	relTypeWorksheet = nsRel + "/worksheet"
	relTypeStyles    = nsRel + "/styles"

	// custom number formats start above the builtin ids
	customFmtBase = 164
)

// StyleRef is an opaque reference to a cell style registered with the
// package. The zero value is the default style.
type StyleRef int

// NoStyle is the default style of unstyled cells.
const NoStyle StyleRef = 0

// pkgWriter writes the parts of one xlsx package. Worksheet parts
// stream directly into the zip, one at a time, forward-only; the
// metadata parts are rendered at finalize, when the sheet list and
// the style table are complete.
type pkgWriter struct {
	fh         *os.File
	zw         *zip.Writer
	sheetPaths []string
	styles     []sheetstream.Style
	styleIdx   map[string]StyleRef
}

func newPkgWriter(fh *os.File) *pkgWriter {
	zw := zip.NewWriter(fh)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})
	return &pkgWriter{fh: fh, zw: zw}
}

// addWorksheet opens the stream of the next worksheet part and
// returns it with the part's relationship id. Opening a part closes
// the previous one; its stream must not be written anymore.
func (p *pkgWriter) addWorksheet() (io.Writer, string, error) {
	n := len(p.sheetPaths) + 1
	path := "xl/worksheets/sheet" + strconv.Itoa(n) + ".xml"
	w, err := p.zw.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("create %s: %w", path, err)
	}
	p.sheetPaths = append(p.sheetPaths, path)
	return w, "rId" + strconv.Itoa(n), nil
}

// style returns the reference of s, registering it on first use.
// The zero style maps to NoStyle without registration.
func (p *pkgWriter) style(s sheetstream.Style) StyleRef {
	if !s.FontBold && s.Format == "" {
		return NoStyle
	}
	k := strconv.FormatBool(s.FontBold) + "\t" + s.Format
	if ref, ok := p.styleIdx[k]; ok {
		return ref
	}
	p.styles = append(p.styles, s)
	ref := StyleRef(len(p.styles))
	if p.styleIdx == nil {
		p.styleIdx = make(map[string]StyleRef)
	}
	p.styleIdx[k] = ref
	return ref
}

// finalize writes the metadata parts (workbookXML is the finished
// workbook envelope), closes the zip and commits the file.
func (p *pkgWriter) finalize(workbookXML []byte) error {
	w, err := p.zw.Create(workbookPart)
	if err != nil {
		return fmt.Errorf("create %s: %w", workbookPart, err)
	}
	if _, err = w.Write(workbookXML); err != nil {
		return fmt.Errorf("write %s: %w", workbookPart, err)
	}
	for _, part := range []struct {
		name   string
		render func(*emitter) error
	}{
		{contentTypesPart, p.renderContentTypes},
		{rootRelsPart, p.renderRootRels},
		{workbookRelsPart, p.renderWorkbookRels},
		{stylesPart, p.renderStyles},
	} {
		w, err := p.zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", part.name, err)
		}
		e := newEmitter(w)
		if err = part.render(e); err != nil {
			return fmt.Errorf("render %s: %w", part.name, err)
		}
		if err = e.Close(); err != nil {
			return fmt.Errorf("close %s: %w", part.name, err)
		}
	}
	if err = p.zw.Close(); err != nil {
		return err
	}
	if err = p.fh.Sync(); err != nil {
		p.fh.Close()
		return err
	}
	return p.fh.Close()
}

func (p *pkgWriter) renderContentTypes(e *emitter) error {
	e.Start("Types", attr{"xmlns", nsContentTypes})
	for _, d := range [][2]string{
		{"rels", ctRels},
		{"xml", "application/xml"},
	} {
		e.Start("Default", attr{"Extension", d[0]}, attr{"ContentType", d[1]})
		if err := e.End("Default"); err != nil {
			return err
		}
	}
	override := func(partName, contentType string) error {
		e.Start("Override", attr{"PartName", "/" + partName}, attr{"ContentType", contentType})
		return e.End("Override")
	}
	if err := override(workbookPart, ctWorkbook); err != nil {
		return err
	}
	for _, path := range p.sheetPaths {
		if err := override(path, ctWorksheet); err != nil {
			return err
		}
	}
	if err := override(stylesPart, ctStyles); err != nil {
		return err
	}
	return e.End("Types")
}

func (p *pkgWriter) renderRootRels(e *emitter) error {
	e.Start("Relationships", attr{"xmlns", nsPkgRel})
	e.Start("Relationship",
		attr{"Id", "rId1"},
		attr{"Type", relTypeOfficeDoc},
		attr{"Target", workbookPart},
	)
	if err := e.End("Relationship"); err != nil {
		return err
	}
	return e.End("Relationships")
}

func (p *pkgWriter) renderWorkbookRels(e *emitter) error {
	e.Start("Relationships", attr{"xmlns", nsPkgRel})
	rel := func(id, typ, target string) error {
		e.Start("Relationship", attr{"Id", id}, attr{"Type", typ}, attr{"Target", target})
		return e.End("Relationship")
	}
	for i := range p.sheetPaths {
		n := strconv.Itoa(i + 1)
		if err := rel("rId"+n, relTypeWorksheet, "worksheets/sheet"+n+".xml"); err != nil {
			return err
		}
	}
	if err := rel("rId"+strconv.Itoa(len(p.sheetPaths)+1), relTypeStyles, "styles.xml"); err != nil {
		return err
	}
	return e.End("Relationships")
}

// renderStyles writes the style table: a default cell format plus one
// cellXf per registered style, so a StyleRef is exactly a cellXf
// index.
func (p *pkgWriter) renderStyles(e *emitter) error {
	e.Start("styleSheet", attr{"xmlns", nsMain})
	var fmtCount int
	for _, s := range p.styles {
		if s.Format != "" {
			fmtCount++
		}
	}
	if fmtCount > 0 {
		e.Start("numFmts", attr{"count", strconv.Itoa(fmtCount)})
		for i, s := range p.styles {
			if s.Format == "" {
				continue
			}
			e.Start("numFmt",
				attr{"numFmtId", strconv.Itoa(customFmtBase + i)},
				attr{"formatCode", s.Format},
			)
			if err := e.End("numFmt"); err != nil {
				return err
			}
		}
		if err := e.End("numFmts"); err != nil {
			return err
		}
	}

	e.Start("fonts", attr{"count", "2"})
	for _, bold := range []bool{false, true} {
		e.Start("font")
		if bold {
			e.Start("b")
			if err := e.End("b"); err != nil {
				return err
			}
		}
		e.Start("sz", attr{"val", "11"})
		if err := e.End("sz"); err != nil {
			return err
		}
		e.Start("name", attr{"val", "Calibri"})
		if err := e.End("name"); err != nil {
			return err
		}
		if err := e.End("font"); err != nil {
			return err
		}
	}
	if err := e.End("fonts"); err != nil {
		return err
	}

	e.Start("fills", attr{"count", "2"})
	for _, pattern := range []string{"none", "gray125"} {
		e.Start("fill")
		e.Start("patternFill", attr{"patternType", pattern})
		if err := e.End("patternFill"); err != nil {
			return err
		}
		if err := e.End("fill"); err != nil {
			return err
		}
	}
	if err := e.End("fills"); err != nil {
		return err
	}

	e.Start("borders", attr{"count", "1"})
	e.Start("border")
	if err := e.End("border"); err != nil {
		return err
	}
	if err := e.End("borders"); err != nil {
		return err
	}

	e.Start("cellStyleXfs", attr{"count", "1"})
	e.Start("xf", attr{"numFmtId", "0"}, attr{"fontId", "0"}, attr{"fillId", "0"}, attr{"borderId", "0"})
	if err := e.End("xf"); err != nil {
		return err
	}
	if err := e.End("cellStyleXfs"); err != nil {
		return err
	}

	e.Start("cellXfs", attr{"count", strconv.Itoa(len(p.styles) + 1)})
	xf := func(attrs ...attr) error {
		e.Start("xf", attrs...)
		return e.End("xf")
	}
	if err := xf(attr{"numFmtId", "0"}, attr{"fontId", "0"}, attr{"fillId", "0"}, attr{"borderId", "0"}, attr{"xfId", "0"}); err != nil {
		return err
	}
	for i, s := range p.styles {
		attrs := make([]attr, 0, 7)
		numFmtID := "0"
		if s.Format != "" {
			numFmtID = strconv.Itoa(customFmtBase + i)
		}
		fontID := "0"
		if s.FontBold {
			fontID = "1"
		}
		attrs = append(attrs,
			attr{"numFmtId", numFmtID},
			attr{"fontId", fontID},
			attr{"fillId", "0"},
			attr{"borderId", "0"},
			attr{"xfId", "0"},
		)
		if s.Format != "" {
			attrs = append(attrs, attr{"applyNumberFormat", "1"})
		}
		if s.FontBold {
			attrs = append(attrs, attr{"applyFont", "1"})
		}
		if err := xf(attrs...); err != nil {
			return err
		}
	}
	if err := e.End("cellXfs"); err != nil {
		return err
	}
	return e.End("styleSheet")
}
