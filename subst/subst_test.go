// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var methods = []string{"debug", "info", "warn", "error", "trace", "log"}

func TestApply(t *testing.T) {
	r := New("console.", "shared.", methods)
	tests := []struct {
		name string
		src  string
		want string
		n    int
	}{
		{
			"simple call",
			`console.log("hi");`,
			`shared.log("hi");`,
			1,
		},
		{
			"several methods",
			"console.warn(x);\nconsole.error(y);\n",
			"shared.warn(x);\nshared.error(y);\n",
			2,
		},
		{
			"space before paren",
			`console.debug ("x");`,
			`shared.debug ("x");`,
			1,
		},
		{
			"unlisted method untouched",
			`console.table(rows);`,
			`console.table(rows);`,
			0,
		},
		{
			"not a call",
			`var m = console.log;`,
			`var m = console.log;`,
			0,
		},
		{
			"inside string untouched",
			`say("console.log(1)");`,
			`say("console.log(1)");`,
			0,
		},
		{
			"inside comment untouched",
			"// console.log(1)\nconsole.log(2);\n",
			"// console.log(1)\nshared.log(2);\n",
			1,
		},
		{
			"inside block comment untouched",
			"/* console.log(1) */ console.log(2);",
			"/* console.log(1) */ shared.log(2);",
			1,
		},
		{
			"longer identifier untouched",
			`myconsole.log(1);`,
			`myconsole.log(1);`,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, n := r.Apply([]byte(tt.src))
			assert.Equal(t, tt.want, string(out))
			assert.Equal(t, tt.n, n)
		})
	}
}

// Applying twice is a no-op: the replacement prefix no longer
// matches.
func TestApplyIdempotent(t *testing.T) {
	r := New("console.", "shared.", methods)
	once, n := r.Apply([]byte("console.log(1); console.info(2);\n"))
	assert.Equal(t, 2, n)
	twice, n := r.Apply(once)
	assert.Equal(t, 0, n)
	assert.Equal(t, string(once), string(twice))
}
