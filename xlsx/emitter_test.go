// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"testing"
)

func TestEmitterNesting(t *testing.T) {
	var buf bytes.Buffer
	e := newEmitter(&buf)
	e.Start("a", attr{"x", `v"<>`})
	e.Start("b")
	e.Text("1 < 2 & 3")
	if err := e.End("a"); err == nil {
		t.Fatal("closing a while b is open must fail")
	}
	if err := e.End("b"); err != nil {
		t.Fatal(err)
	}
	if d := e.Depth(); d != 1 {
		t.Fatalf("depth = %d, want 1", d)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	want := xmlDecl + `<a x="v&quot;&lt;&gt;"><b>1 &lt; 2 &amp; 3</b></a>`
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestEmitterEndWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	e := newEmitter(&buf)
	if err := e.End("a"); err == nil {
		t.Fatal("End on an empty stack must fail")
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEmitterCloseClosesAll(t *testing.T) {
	var buf bytes.Buffer
	e := newEmitter(&buf)
	e.Start("a")
	e.Start("b")
	e.Start("c")
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	want := xmlDecl + "<a><b><c></c></b></a>"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
	// a second Close must be a no-op
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
}
