// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "testing"

func TestBuffer(t *testing.T) {
	src := "aaa bbb ccc"
	b := NewBuffer([]byte(src))
	// Queue out of order; Bytes applies in ascending span order.
	b.Replace(Span{8, 11}, "C")
	b.Replace(Span{0, 3}, "A")
	if got, want := string(b.Bytes()), "A bbb C"; got != want {
		t.Errorf("Bytes = %q, want %q", got, want)
	}
	// Source is untouched.
	if string(b.src) != src {
		t.Errorf("source mutated: %q", b.src)
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBuffer([]byte("package p\n\nfunc f() {}\n"))
	b.Insert(11, "func g() {}\n\n")
	want := "package p\n\nfunc g() {}\n\nfunc f() {}\n"
	if got := string(b.Bytes()); got != want {
		t.Errorf("Bytes = %q, want %q", got, want)
	}
}

func TestBufferNoEdits(t *testing.T) {
	src := "unchanged"
	if got := string(NewBuffer([]byte(src)).Bytes()); got != src {
		t.Errorf("Bytes = %q, want %q", got, src)
	}
}

func TestBufferOverlapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("overlapping replacements did not panic")
		}
	}()
	b := NewBuffer([]byte("aaaa"))
	b.Replace(Span{0, 3}, "x")
	b.Replace(Span{2, 4}, "y")
	b.Bytes()
}
