// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

// A Rule maps one construction-expression shape to a constructor
// helper. A rule matches when every name in Fields is present in the
// extracted field list; the matched fields become the helper's
// positional arguments in the order declared here, and any remaining
// fields are emitted as assignments in their original order.
//
// Params optionally gives the parameter types used when the helper
// declaration itself is generated (see RenderHelpers); it must be
// empty or the same length as Fields.
type Rule struct {
	Helper string   `yaml:"helper"`
	Fields []string `yaml:"fields"`
	Params []string `yaml:"params,omitempty"`
}

// A Decision is the outcome of matching a field list against the rule
// table: the winning rule, the core fields in the rule's parameter
// order, and the extra fields in their original relative order.
type Decision struct {
	Rule  Rule
	Core  []Field
	Extra []Field
}

// Decide tries the rules in order and returns a Decision for the
// first rule whose required fields are all present (case-sensitive).
// Rules are expected to be ordered most-specific first; a later rule
// never wins over an earlier satisfied one, even with a larger field
// set. ok is false when no rule matches.
//
// Already-rewritten text never reaches Decide: the emitter's output
// contains no marker-plus-brace shape, so the scanner cannot match
// it, which is what makes repeated runs converge.
func Decide(fields []Field, rules []Rule) (Decision, bool) {
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
Rules:
	for _, r := range rules {
		for _, name := range r.Fields {
			if _, ok := byName[name]; !ok {
				continue Rules
			}
		}
		d := Decision{Rule: r}
		core := make(map[string]bool, len(r.Fields))
		for _, name := range r.Fields {
			core[name] = true
			d.Core = append(d.Core, byName[name])
		}
		for _, f := range fields {
			if !core[f.Name] {
				d.Extra = append(d.Extra, f)
			}
		}
		return d, true
	}
	return Decision{}, false
}
