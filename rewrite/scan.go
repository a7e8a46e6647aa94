// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"bytes"
)

// A Span is a half-open [Start, End) byte range in a source buffer,
// bounding one construction expression including its marker prefix
// and both braces. Spans returned by Scan are always balanced: every
// opening brace inside the span outside string and comment regions
// has its matching closer inside the span.
type Span struct {
	Start, End int
}

// Scan finds the next construction expression at or after the byte
// offset from: the marker token, immediately followed by an opening
// brace, at an identifier boundary. Marker occurrences inside string
// literals and comments are ignored, as are braces, so a field value
// such as "}" cannot close a span early.
//
// ok is false when the rest of the buffer holds no candidate.
// A non-nil error wraps ErrUnterminated: a marker was found whose
// braces never balance before end of buffer. The returned span then
// runs from the marker to end of buffer, and the caller should treat
// the remainder as unmatched rather than fail the file.
func Scan(src []byte, marker string, from int) (sp Span, ok bool, err error) {
	m := []byte(marker)
	if len(m) == 0 {
		return Span{}, false, nil
	}
	i := from
	for i < len(src) {
		if j := skipNonCode(src, i); j > i {
			i = j
			continue
		}
		if src[i] == m[0] && bytes.HasPrefix(src[i:], m) && boundaryBefore(src, i) {
			open := i + len(m)
			if open < len(src) && src[open] == '{' {
				end, ok := scanBalanced(src, open)
				if !ok {
					return Span{i, len(src)}, false, ErrUnterminated
				}
				return Span{i, end}, true, nil
			}
		}
		i++
	}
	return Span{}, false, nil
}

// scanBalanced scans from the opening brace at open until the brace
// nesting returns to zero, skipping strings and comments. It reports
// the offset just past the matching closer, or false when end of
// buffer is reached first.
func scanBalanced(src []byte, open int) (end int, ok bool) {
	depth := 0
	i := open
	for i < len(src) {
		if j := skipNonCode(src, i); j > i {
			i = j
			continue
		}
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// skipNonCode advances past a string literal, rune literal, or
// comment opening at i. It returns i unchanged when src[i] starts
// none of these, so callers can use any advance as the signal to
// continue.
func skipNonCode(src []byte, i int) int {
	switch src[i] {
	case '"', '\'':
		return skipQuoted(src, i)
	case '`':
		return skipRaw(src, i)
	case '/':
		if i+1 < len(src) {
			switch src[i+1] {
			case '/':
				return skipLine(src, i)
			case '*':
				return skipBlock(src, i)
			}
		}
	}
	return i
}

// skipQuoted advances past a quoted literal opened at i, honoring
// backslash escapes. An unterminated literal ends at the newline,
// matching how the host language would tokenize it.
func skipQuoted(src []byte, i int) int {
	q := src[i]
	for i++; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case q:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(src)
}

// skipRaw advances past a raw (backquoted) literal opened at i.
// Raw literals have no escapes and may span lines.
func skipRaw(src []byte, i int) int {
	for i++; i < len(src); i++ {
		if src[i] == '`' {
			return i + 1
		}
	}
	return len(src)
}

func skipLine(src []byte, i int) int {
	for ; i < len(src); i++ {
		if src[i] == '\n' {
			return i
		}
	}
	return len(src)
}

func skipBlock(src []byte, i int) int {
	for i += 2; i+1 < len(src); i++ {
		if src[i] == '*' && src[i+1] == '/' {
			return i + 2
		}
	}
	return len(src)
}

// boundaryBefore reports whether the byte before offset i cannot be
// part of an identifier or selector, so that a marker like "Widget"
// does not match inside "myWidget" or "pkg.Widget".
func boundaryBefore(src []byte, i int) bool {
	if i == 0 {
		return true
	}
	c := src[i-1]
	return !(c == '.' || c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9')
}
