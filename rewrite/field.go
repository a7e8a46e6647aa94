// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// A Field is one name: value pair extracted from a construction
// expression. Value is the raw source text of the value with
// surrounding whitespace trimmed; internal line breaks are kept and
// normalized only when the field is emitted. ValueSpan locates that
// trimmed text in the original buffer.
type Field struct {
	Name      string
	Value     string
	ValueSpan Span
}

var isIdent = regexp.MustCompile(`^[\p{L}_][\p{L}\p{Nd}_]*$`)

// ExtractFields splits the content of a scanned span into its ordered
// field list. Segments are cut at commas that are not nested inside a
// deeper brace, bracket, or paren pair and not inside a string; each
// segment is then cut at its first top-level colon. A single trailing
// comma is tolerated and segments that are empty after trimming are
// dropped.
//
// The error wraps ErrMalformed when a non-empty segment has no
// top-level colon, when a field name is not an identifier, or when a
// name repeats. Callers leave such spans untouched rather than guess.
func ExtractFields(src []byte, sp Span) ([]Field, error) {
	open := sp.Start + bytes.IndexByte(src[sp.Start:sp.End], '{')
	lo, hi := open+1, sp.End-1

	var fields []Field
	seen := make(map[string]bool)
	segStart := lo
	colon := -1
	depth := 0

	flush := func(segEnd int) error {
		seg := strings.TrimSpace(string(src[segStart:segEnd]))
		if seg == "" {
			return nil
		}
		if colon < 0 {
			return fmt.Errorf("%w: field %q has no name separator", ErrMalformed, seg)
		}
		name := strings.TrimSpace(string(src[segStart:colon]))
		if !isIdent.MatchString(name) {
			return fmt.Errorf("%w: bad field name %q", ErrMalformed, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate field %s", ErrMalformed, name)
		}
		seen[name] = true
		vlo, vhi := trimRange(src, colon+1, segEnd)
		fields = append(fields, Field{
			Name:      name,
			Value:     string(src[vlo:vhi]),
			ValueSpan: Span{vlo, vhi},
		})
		return nil
	}

	for i := lo; i < hi; {
		if j := skipNonCode(src, i); j > i {
			i = j
			continue
		}
		switch src[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ':':
			if depth == 0 && colon < 0 {
				colon = i
			}
		case ',':
			if depth == 0 {
				if err := flush(i); err != nil {
					return nil, err
				}
				segStart = i + 1
				colon = -1
			}
		}
		i++
	}
	if err := flush(hi); err != nil {
		return nil, err
	}
	return fields, nil
}

// trimRange narrows [lo, hi) to exclude leading and trailing
// whitespace, so the value's span matches its trimmed text.
func trimRange(src []byte, lo, hi int) (int, int) {
	for lo < hi && isSpace(src[lo]) {
		lo++
	}
	for hi > lo && isSpace(src[hi-1]) {
		hi--
	}
	return lo, hi
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
