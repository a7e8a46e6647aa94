// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subst is the simple token-substitution pass: a verbatim
// renaming of one call prefix (console.log( becoming
// shared.log(, say). It needs no structural parsing, only enough
// string and comment awareness to leave prefixes inside literals
// alone.
package subst

import (
	"bytes"
	"strings"
)

// A Replacer renames calls through one prefix. Occurrences of
// prefix+method immediately heading a call have the prefix replaced;
// the method name and everything after it are left verbatim.
type Replacer struct {
	prefix      string
	replacement string
	methods     map[string]bool
}

func New(prefix, replacement string, methods []string) *Replacer {
	m := make(map[string]bool, len(methods))
	for _, name := range methods {
		m[name] = true
	}
	return &Replacer{prefix: prefix, replacement: replacement, methods: m}
}

// Apply rewrites src and returns the new buffer and the number of
// call prefixes replaced. Matches inside string literals and comments
// are left alone. When n is zero, out is src.
func (r *Replacer) Apply(src []byte) (out []byte, n int) {
	p := []byte(r.prefix)
	var b bytes.Buffer
	last := 0
	i := 0
	for i < len(src) {
		if j := skipNonCode(src, i); j > i {
			i = j
			continue
		}
		if src[i] == p[0] && bytes.HasPrefix(src[i:], p) && boundaryBefore(src, i) {
			if end, ok := r.callAfter(src, i+len(p)); ok {
				b.Write(src[last:i])
				b.WriteString(r.replacement)
				last = i + len(p)
				n++
				i = end
				continue
			}
		}
		i++
	}
	if n == 0 {
		return src, 0
	}
	b.Write(src[last:])
	return b.Bytes(), n
}

// callAfter reports whether a listed method name followed by an
// opening paren starts at i, and where the method name ends.
func (r *Replacer) callAfter(src []byte, i int) (end int, ok bool) {
	j := i
	for j < len(src) && isIdentByte(src[j]) {
		j++
	}
	if j == i || !r.methods[string(src[i:j])] {
		return 0, false
	}
	k := j
	for k < len(src) && (src[k] == ' ' || src[k] == '\t') {
		k++
	}
	if k == len(src) || src[k] != '(' {
		return 0, false
	}
	return j, true
}

// skipNonCode advances past a string literal or comment opening at i,
// covering the quoting and comment forms of the C-family sources this
// pass runs over (single, double, and backquoted strings; line and
// block comments).
func skipNonCode(src []byte, i int) int {
	switch src[i] {
	case '"', '\'':
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
	case '`':
		if j := bytes.IndexByte(src[i+1:], '`'); j >= 0 {
			return i + 1 + j + 1
		}
		return len(src)
	case '/':
		if i+1 < len(src) && src[i+1] == '/' {
			if j := bytes.IndexByte(src[i:], '\n'); j >= 0 {
				return i + j
			}
			return len(src)
		}
		if i+1 < len(src) && src[i+1] == '*' {
			if j := strings.Index(string(src[i+2:]), "*/"); j >= 0 {
				return i + 2 + j + 2
			}
			return len(src)
		}
	}
	return i
}

func boundaryBefore(src []byte, i int) bool {
	if i == 0 {
		return true
	}
	return !isIdentByte(src[i-1]) && src[i-1] != '.' && src[i-1] != '$'
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
