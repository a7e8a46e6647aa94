// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// A Config is the per-run rule configuration. It is read once, passed
// by value into the run, and never mutated; there is no process-wide
// configuration state.
type Config struct {
	// Marker is the prefix token that opens a construction
	// expression, e.g. "&Widget" or "&storage.MetricsSnapshot".
	Marker string `yaml:"marker"`

	// Type is the bare type name used in generated helper
	// declarations. Defaults to Marker stripped of "&" and any
	// package qualifier.
	Type string `yaml:"type,omitempty"`

	// EmitHelpers inserts declarations for helpers a file calls but
	// does not define, after the file's import block.
	EmitHelpers bool `yaml:"emit_helpers,omitempty"`

	// Rules is the ordered rule table, most-specific first.
	Rules []Rule `yaml:"rules"`

	// Exts limits which files the walker hands to the engine.
	Exts []string `yaml:"exts,omitempty"`

	// Subst configures the separate call-prefix substitution pass.
	Subst SubstRule `yaml:"subst,omitempty"`
}

// A SubstRule configures the verbatim call-prefix renaming pass:
// occurrences of Prefix followed by one of Methods and a call paren
// have the prefix replaced with Replacement.
type SubstRule struct {
	Prefix      string   `yaml:"prefix"`
	Replacement string   `yaml:"replacement"`
	Methods     []string `yaml:"methods"`
}

// LoadConfig reads and validates a YAML rule file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(cfg.Exts) == 0 {
		cfg.Exts = []string{".go"}
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return cfg, nil
}

// TypeName returns the bare type name for generated helpers.
func (c *Config) TypeName() string {
	if c.Type != "" {
		return c.Type
	}
	t := strings.TrimPrefix(c.Marker, "&")
	if i := strings.LastIndexByte(t, '.'); i >= 0 {
		t = t[i+1:]
	}
	return t
}

func (c *Config) check() error {
	if c.Marker == "" && c.Subst.Prefix == "" {
		return fmt.Errorf("config needs a marker or a subst section")
	}
	if c.Marker != "" && len(c.Rules) == 0 {
		return fmt.Errorf("marker %s has no rules", c.Marker)
	}
	helpers := make(map[string]bool)
	for i, r := range c.Rules {
		if r.Helper == "" {
			return fmt.Errorf("rule %d: missing helper name", i)
		}
		if helpers[r.Helper] {
			return fmt.Errorf("rule %d: helper %s already used", i, r.Helper)
		}
		helpers[r.Helper] = true
		if len(r.Fields) == 0 {
			return fmt.Errorf("rule %s: no required fields", r.Helper)
		}
		seen := make(map[string]bool)
		for _, f := range r.Fields {
			if !isIdent.MatchString(f) {
				return fmt.Errorf("rule %s: bad field name %q", r.Helper, f)
			}
			if seen[f] {
				return fmt.Errorf("rule %s: duplicate field %s", r.Helper, f)
			}
			seen[f] = true
		}
		if len(r.Params) != 0 && len(r.Params) != len(r.Fields) {
			return fmt.Errorf("rule %s: %d params for %d fields", r.Helper, len(r.Params), len(r.Fields))
		}
		if c.EmitHelpers && len(r.Params) == 0 {
			return fmt.Errorf("rule %s: emit_helpers needs params", r.Helper)
		}
		// First match wins, so a later rule requiring a superset of an
		// earlier rule's fields can never win: whenever it would match,
		// the earlier rule matches too. That ordering is a mistake.
		for j := 0; j < i; j++ {
			if subset(c.Rules[j].Fields, r.Fields) {
				return fmt.Errorf("rule %s can never match: rule %s requires a subset of its fields and is tried first", r.Helper, c.Rules[j].Helper)
			}
		}
	}
	if c.Subst.Prefix != "" {
		if c.Subst.Replacement == "" {
			return fmt.Errorf("subst: missing replacement")
		}
		if len(c.Subst.Methods) == 0 {
			return fmt.Errorf("subst: no methods listed")
		}
	}
	return nil
}

func subset(a, b []string) bool {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	for _, s := range a {
		if !in[s] {
			return false
		}
	}
	return true
}
