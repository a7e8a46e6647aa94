// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ctorfix rewrites struct-literal construction expressions into
// constructor-helper calls.
//
// Usage:
//
//	ctorfix [-diff] [-subst] [-v] [-n workers] rules.yaml [path ...]
//
// Ctorfix scans the named files and directories (by default the
// current directory) for occurrences of a configured literal shape,
// such as:
//
//	d := &Device{
//		Serial:  "X1",
//		IP:      "10.0.0.9",
//		IsSaved: true,
//		Model:   "MX-2",
//	}
//
// and rewrites each into a call to a constructor helper, with any
// fields the helper does not cover assigned explicitly afterwards:
//
//	d := newTestDevice("X1", "10.0.0.9", true)
//	d.Model = "MX-2"
//
// Text outside the matched literals is left byte for byte untouched.
// Running ctorfix again over its own output is a no-op: the output
// shape contains no literal for the scanner to match.
//
// By default ctorfix writes changes back to disk, keeping a .bak copy
// of each file's original contents beside it. The -diff flag prints a
// unified diff of the intended changes instead of writing anything.
//
// # Rule files
//
// The rule file names the literal marker and the ordered helper
// rules. The first rule whose required fields are all present in a
// literal wins, so rules must be listed most-specific first (the
// loader rejects orderings where a later rule can never win):
//
//	marker: "&Device"
//	emit_helpers: true
//	rules:
//	  - helper: newFullTestDevice
//	    fields: [Serial, IP, Manufacturer, Model, IsSaved]
//	    params: [string, string, string, string, bool]
//	  - helper: newTestDevice
//	    fields: [Serial, IP, IsSaved]
//	    params: [string, string, bool]
//
// With emit_helpers set, a file that gains calls to a helper it does
// not define has the helper declaration generated and inserted after
// its import block.
//
// Literals whose content cannot be split into name: value fields, and
// markers whose braces never balance, are reported and left exactly
// as they were; the scan continues past them.
//
// # Substitution pass
//
// The -subst flag runs the unrelated, much simpler token-substitution
// pass instead: a verbatim renaming of one call prefix, configured in
// the same rule file:
//
//	exts: [.js]
//	subst:
//	  prefix: "console."
//	  replacement: "shared."
//	  methods: [debug, info, warn, error, trace, log]
//
// Prefixes inside string literals and comments are not renamed.
package main
