// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bufio"
	"fmt"
	"io"

	"github.com/valyala/quicktemplate"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// attr is one XML attribute. The value is escaped on write, the name
// is written as-is.
type attr struct {
	Name, Value string
}

// emitter appends nested XML elements to a forward-only stream. It
// keeps the stack of currently open elements: every Start must be
// matched by an End in strict LIFO order, and a closed element can
// never be reopened. Write errors stick in the buffered writer and
// surface on Flush/Close.
type emitter struct {
	bw    *bufio.Writer
	qw    *quicktemplate.Writer
	stack []string
}

func newEmitter(w io.Writer) *emitter {
	bw := bufio.NewWriterSize(w, 1<<16)
	e := &emitter{bw: bw, qw: quicktemplate.AcquireWriter(bw)}
	e.qw.N().S(xmlDecl)
	return e
}

// Start opens an element. It stays open until the matching End.
func (e *emitter) Start(name string, attrs ...attr) {
	w := e.qw.N()
	w.S("<")
	w.S(name)
	for _, a := range attrs {
		w.S(" ")
		w.S(a.Name)
		w.S(`="`)
		e.qw.E().S(a.Value)
		w.S(`"`)
	}
	w.S(">")
	e.stack = append(e.stack, name)
}

// Text writes escaped character data into the innermost open element.
func (e *emitter) Text(s string) { e.qw.E().S(s) }

// End closes the innermost open element, which must be name.
func (e *emitter) End(name string) error {
	if len(e.stack) == 0 {
		return fmt.Errorf("end %q: no open element", name)
	}
	if top := e.stack[len(e.stack)-1]; top != name {
		return fmt.Errorf("end %q: innermost open element is %q", name, top)
	}
	e.stack = e.stack[:len(e.stack)-1]
	w := e.qw.N()
	w.S("</")
	w.S(name)
	w.S(">")
	return nil
}

// EndAll closes every open element, innermost first.
func (e *emitter) EndAll() error {
	for len(e.stack) > 0 {
		if err := e.End(e.stack[len(e.stack)-1]); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) Depth() int { return len(e.stack) }

func (e *emitter) Flush() error { return e.bw.Flush() }

// Close ends all open elements and flushes. The emitter must not be
// used afterwards; a second Close is a no-op.
func (e *emitter) Close() error {
	if e.qw == nil {
		return nil
	}
	err := e.EndAll()
	quicktemplate.ReleaseWriter(e.qw)
	e.qw = nil
	if ferr := e.bw.Flush(); err == nil {
		err = ferr
	}
	return err
}
