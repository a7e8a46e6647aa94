// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "strings"

// A CallSite describes where a construction expression appeared, as
// far as the emitter needs to know: the receiver through which extra
// fields can be assigned (the variable being declared, or a
// caller-supplied receiver expression), and the indentation of the
// line the span starts on, reused for the assignment lines.
type CallSite struct {
	Receiver string
	Indent   string
}

// Render produces the replacement text for one decided rewrite: the
// helper call with the core values as positional arguments, then one
// assignment line per extra field. Values are relocated verbatim
// except that embedded line breaks are normalized to single spaces.
func Render(site CallSite, d Decision) string {
	var b strings.Builder
	b.WriteString(d.Rule.Helper)
	b.WriteByte('(')
	for i, f := range d.Core {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(flatten(f.Value))
	}
	b.WriteByte(')')
	for _, f := range d.Extra {
		b.WriteByte('\n')
		b.WriteString(site.Indent)
		b.WriteString(site.Receiver)
		b.WriteByte('.')
		b.WriteString(f.Name)
		b.WriteString(" = ")
		b.WriteString(flatten(f.Value))
	}
	return b.String()
}

// flatten joins a multi-line value onto one line, collapsing each
// line break and its surrounding indentation to a single space.
func flatten(v string) string {
	if !strings.Contains(v, "\n") {
		return v
	}
	lines := strings.Split(v, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, " ")
}

// indentAt returns the leading whitespace of the line containing
// offset off.
func indentAt(src []byte, off int) string {
	start := off
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}
