// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"bytes"
	"strings"
	"unicode"
)

// HasCandidates reports whether the buffer still contains any
// construction expression for the marker. A file with none is left
// unchanged and unwritten.
func HasCandidates(src []byte, marker string) bool {
	_, ok, _ := Scan(src, marker, 0)
	return ok
}

// NeedsHelpers returns, in rule order, the helpers from used that the
// buffer does not yet declare. used holds the helper names the
// current pass actually emitted calls to; helpers for rules that
// never matched are not inserted.
func NeedsHelpers(src []byte, rules []Rule, used map[string]bool) []string {
	var missing []string
	for _, r := range rules {
		if used[r.Helper] && !bytes.Contains(src, []byte("func "+r.Helper+"(")) {
			missing = append(missing, r.Helper)
		}
	}
	return missing
}

// HelperAnchor returns the offset at which generated helper
// declarations should be inserted: the start of the first top-level
// func declaration, which places them immediately after the file's
// import and declaration blocks. When the file has no func, the
// anchor is end of buffer.
func HelperAnchor(src []byte) int {
	if bytes.HasPrefix(src, []byte("func ")) {
		return 0
	}
	if i := bytes.Index(src, []byte("\nfunc ")); i >= 0 {
		return i + 1
	}
	return len(src)
}

// RenderHelpers generates declarations for the named helpers from the
// rule table. Each helper constructs an empty value of the configured
// type and assigns its rule's fields from the parameters:
//
//	func newWidget(name string, size int) *Widget {
//		w := &Widget{}
//		w.Name = name
//		w.Size = size
//		return w
//	}
//
// The configuration must carry parameter types for every rule being
// rendered; LoadConfig enforces that when helper emission is on.
func RenderHelpers(cfg *Config, names []string) string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	typ := cfg.TypeName()
	ptr := strings.HasPrefix(cfg.Marker, "&")

	var b strings.Builder
	for _, r := range cfg.Rules {
		if !want[r.Helper] {
			continue
		}
		params := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			params[i] = paramName(f)
		}
		recv := receiverName(typ, params)

		b.WriteString("func ")
		b.WriteString(r.Helper)
		b.WriteByte('(')
		for i, p := range params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p + " " + r.Params[i])
		}
		b.WriteString(") ")
		if ptr {
			b.WriteByte('*')
		}
		b.WriteString(typ + " {\n")
		b.WriteString("\t" + recv + " := ")
		if ptr {
			b.WriteByte('&')
		}
		b.WriteString(typ + "{}\n")
		for i, f := range r.Fields {
			b.WriteString("\t" + recv + "." + f + " = " + params[i] + "\n")
		}
		b.WriteString("\treturn " + recv + "\n}\n\n")
	}
	return b.String()
}

// paramName derives a parameter name from a field name: initialisms
// are lowered whole (IP becomes ip), anything else just lowers the
// first rune (PageCount becomes pageCount).
func paramName(field string) string {
	if field == strings.ToUpper(field) {
		return strings.ToLower(field)
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// receiverName picks a short receiver for the helper body that does
// not collide with any parameter.
func receiverName(typ string, params []string) string {
	taken := make(map[string]bool, len(params))
	for _, p := range params {
		taken[p] = true
	}
	for _, r := range []string{strings.ToLower(typ[:1]), "v", "out"} {
		if !taken[r] {
			return r
		}
	}
	return "out0"
}
