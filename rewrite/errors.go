// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the recoverable per-span conditions. Both are
// reported as warnings on the Result and leave the offending span
// untouched; neither fails the file.
var (
	// ErrMalformed marks a matched span whose content cannot be
	// split into name: value fields.
	ErrMalformed = errors.New("malformed literal")

	// ErrUnterminated marks a marker whose braces never balance
	// before end of buffer.
	ErrUnterminated = errors.New("unterminated literal")
)

// An Error is an error at a particular source position.
type Error struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
	}
	return e.Msg
}

// An ErrorList is a set of Errors collected across a run. It is also
// an error itself. The zero value is an empty list, ready to use.
// Duplicate errors (same position and message) are suppressed.
type ErrorList struct {
	errs []*Error
	seen map[string]bool
}

func (l *ErrorList) Add(e *Error) {
	k := fmt.Sprintf("%s:%d:%d:%s", e.File, e.Line, e.Col, e.Msg)
	if l.seen[k] {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	l.seen[k] = true
	l.errs = append(l.errs, e)
}

// Errors returns the collected errors sorted by file and position.
func (l *ErrorList) Errors() []*Error {
	sort.Slice(l.errs, func(i, j int) bool {
		a, b := l.errs[i], l.errs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
	return l.errs
}

// Error returns a "\n" separated list of formatted errors. The result
// does not end in "\n"; the caller is expected to add that.
func (l *ErrorList) Error() string {
	buf := new(strings.Builder)
	for _, e := range l.Errors() {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

// lineCol converts a byte offset into 1-based line and column.
func lineCol(src []byte, off int) (line, col int) {
	if off > len(src) {
		off = len(src)
	}
	line, col = 1, 1
	for _, c := range src[:off] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
