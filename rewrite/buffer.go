// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"sort"
)

// A Buffer is a queue of replacements to apply to a source buffer.
// The source is never mutated; Bytes rebuilds the text left to right,
// so earlier replacements cannot invalidate the offsets of later
// ones. Replacements must not overlap: overlap means two rewrites
// claimed the same text, which is a bug in the caller, and Bytes
// panics on it.
type Buffer struct {
	src   []byte
	repls []repl
}

type repl struct {
	span Span
	text string
}

func NewBuffer(src []byte) *Buffer {
	return &Buffer{src: src}
}

// Replace queues text as the replacement for the span.
func (b *Buffer) Replace(sp Span, text string) {
	b.repls = append(b.repls, repl{sp, text})
}

// Insert queues text to be inserted at offset off.
func (b *Buffer) Insert(off int, text string) {
	b.Replace(Span{off, off}, text)
}

// Bytes applies the queued replacements in ascending span order and
// returns the new buffer.
func (b *Buffer) Bytes() []byte {
	repls := append([]repl(nil), b.repls...)
	sort.SliceStable(repls, func(i, j int) bool {
		return repls[i].span.Start < repls[j].span.Start
	})
	var out []byte
	pos := 0
	for _, r := range repls {
		if r.span.Start < pos {
			panic(fmt.Sprintf("rewrite: overlapping replacement at [%d,%d)", r.span.Start, r.span.End))
		}
		out = append(out, b.src[pos:r.span.Start]...)
		out = append(out, r.text...)
		pos = r.span.End
	}
	out = append(out, b.src[pos:]...)
	return out
}
