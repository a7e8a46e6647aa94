// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import "testing"

func TestDiff(t *testing.T) {
	const (
		oldText = "w := &Widget{Name: \"a\", Size: 3}\nuse(w)\n"
		newText = "w := newWidget(\"a\", 3)\nuse(w)\n"
		want    = "diff old/x.go new/x.go\n--- old/x.go\n+++ new/x.go\n@@ -1,2 +1,2 @@\n-w := &Widget{Name: \"a\", Size: 3}\n+w := newWidget(\"a\", 3)\n use(w)\n"
	)
	out, err := Diff("old/x.go", []byte(oldText), "new/x.go", []byte(newText))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}

func TestDiffIdentical(t *testing.T) {
	out, err := Diff("a", []byte("same\n"), "b", []byte("same\n"))
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("Diff of identical inputs = %q, want nil", out)
	}
}
