// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite locates construction expressions (struct literals
// with named fields) in raw source text and rewrites each into a
// constructor-helper call plus explicit field assignments, leaving
// everything outside the matched spans byte for byte untouched.
//
// The engine is deliberately not a parser for the host language: it
// performs a bounded, string- and comment-aware balanced-brace scan,
// which is exactly enough to delimit one literal shape regardless of
// field order, field count, nesting, or multi-line formatting.
package rewrite

import (
	"strings"
)

// A Warning is a recoverable per-span condition found while rewriting
// one buffer: the span was left untouched and the scan continued.
// Err wraps ErrMalformed or ErrUnterminated.
type Warning struct {
	Line int
	Col  int
	Err  error
}

// A Result is the outcome of rewriting one buffer. Text is a new
// buffer; the input is never mutated, so the original stays
// recoverable until the caller commits the write. When Rewrites is
// zero, Text is the input buffer and the caller should neither back
// up nor write the file.
type Result struct {
	Text     []byte
	Rewrites int
	Warnings []*Warning
}

// File runs the full scan, extract, decide, emit pass over one source
// buffer and returns the rewritten text. The entire new buffer is
// computed before the caller does any I/O, so a file is only ever
// written whole.
func File(src []byte, cfg *Config) *Result {
	res := &Result{Text: src}
	buf := NewBuffer(src)
	used := make(map[string]bool)
	pos := 0
	for {
		sp, ok, err := Scan(src, cfg.Marker, pos)
		if err != nil {
			res.warn(src, sp.Start, err)
			break
		}
		if !ok {
			break
		}
		pos = sp.End

		fields, err := ExtractFields(src, sp)
		if err != nil {
			res.warn(src, sp.Start, err)
			continue
		}
		if nestedMarker(fields, cfg.Marker) {
			// A construction expression inside one of the values would
			// survive the rewrite verbatim and be picked up again on the
			// next run, so rewriting the outer span here could not
			// converge. Leave the whole span as is.
			continue
		}
		d, ok := Decide(fields, cfg.Rules)
		if !ok {
			continue
		}
		site, ok := siteFor(src, sp, len(d.Extra) > 0)
		if !ok {
			// Extra fields need a receiver to assign through, and this
			// literal is not the tail of a variable declaration. Leave it.
			continue
		}
		buf.Replace(sp, Render(site, d))
		used[d.Rule.Helper] = true
		res.Rewrites++
	}
	if res.Rewrites == 0 {
		return res
	}

	if cfg.EmitHelpers {
		if missing := NeedsHelpers(src, cfg.Rules, used); len(missing) > 0 {
			buf.Insert(HelperAnchor(src), RenderHelpers(cfg, missing))
		}
	}
	res.Text = buf.Bytes()
	return res
}

func (r *Result) warn(src []byte, off int, err error) {
	line, col := lineCol(src, off)
	r.Warnings = append(r.Warnings, &Warning{Line: line, Col: col, Err: err})
}

// nestedMarker reports whether any field value itself contains a
// construction expression for the marker.
func nestedMarker(fields []Field, marker string) bool {
	for _, f := range fields {
		if strings.Contains(f.Value, marker+"{") {
			return true
		}
	}
	return false
}

// siteFor derives the call site for a span. Rewrites without extra
// fields are pure expression replacements and work anywhere. Rewrites
// with extra fields append assignment statements after the line, so
// the literal must be the right-hand side of a variable declaration
// or assignment and the last thing on its line; the declared variable
// becomes the receiver.
func siteFor(src []byte, sp Span, needReceiver bool) (CallSite, bool) {
	indent := indentAt(src, sp.Start)
	if !needReceiver {
		return CallSite{Indent: indent}, true
	}
	recv, ok := declaredName(src, sp.Start)
	if !ok || !blankToEOL(src, sp.End) {
		return CallSite{}, false
	}
	return CallSite{Receiver: recv, Indent: indent}, true
}

// declaredName reads backwards from the span start looking for
// "name :=" or "name =" immediately before it.
func declaredName(src []byte, off int) (string, bool) {
	i := off
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	if i == 0 || src[i-1] != '=' {
		return "", false
	}
	i--
	if i > 0 && src[i-1] == ':' {
		i--
	}
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	end := i
	for i > 0 && isIdentByte(src[i-1]) {
		i--
	}
	name := string(src[i:end])
	if !isIdent.MatchString(name) {
		return "", false
	}
	if i > 0 && src[i-1] == '.' {
		// Field or method target, not a plain variable.
		return "", false
	}
	return name, true
}

// blankToEOL reports whether only whitespace follows offset off on
// its line.
func blankToEOL(src []byte, off int) bool {
	for i := off; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
