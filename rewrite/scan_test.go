// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // expected span text; "" means no match
	}{
		{"inline", `d := &Widget{Name: "a"}`, `&Widget{Name: "a"}`},
		{"multiline", "d := &Widget{\n\tName: \"a\",\n\tSize: 3,\n}\n", "&Widget{\n\tName: \"a\",\n\tSize: 3,\n}"},
		{"nested braces", `f(&Widget{Meta: map[string]int{"x": 1}})`, `&Widget{Meta: map[string]int{"x": 1}}`},
		{"brace in string", `d := &Widget{Name: "}{"}`, `&Widget{Name: "}{"}`},
		{"brace in raw string", "d := &Widget{Name: `}`}", "&Widget{Name: `}`}"},
		{"brace in rune", `d := &Widget{Sep: '}'}`, `&Widget{Sep: '}'}`},
		{"marker in string", `s := "&Widget{Name: 1}"`, ""},
		{"marker in line comment", "// &Widget{Name: 1}\n", ""},
		{"marker in block comment", "/* &Widget{\n} */\n", ""},
		{"closer in line comment", "d := &Widget{ // }\n\tName: \"a\",\n}", "&Widget{ // }\n\tName: \"a\",\n}"},
		{"no brace after marker", "var d *Widget = f(&Widget\n)", ""},
		{"no marker", "d := newWidget(1)\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp, ok, err := Scan([]byte(tt.src), "&Widget", 0)
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if !ok {
				if tt.want != "" {
					t.Fatalf("Scan found nothing, want %q", tt.want)
				}
				return
			}
			if got := tt.src[sp.Start:sp.End]; got != tt.want {
				t.Errorf("Scan span = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanBoundary(t *testing.T) {
	// "Widget" as marker must not match inside a longer identifier
	// or selector.
	src := []byte("a := myWidget{X: 1}\nb := pkg.Widget{X: 1}\nc := Widget{X: 1}\n")
	sp, ok, err := Scan(src, "Widget", 0)
	if err != nil || !ok {
		t.Fatalf("Scan = %v, %v, %v", sp, ok, err)
	}
	if got, want := string(src[sp.Start:sp.End]), "Widget{X: 1}"; got != want || sp.Start != strings.Index(string(src), "c := ")+5 {
		t.Errorf("Scan matched %q at %d, want %q at the plain identifier", got, sp.Start, want)
	}
}

func TestScanFrom(t *testing.T) {
	src := []byte(`a := &Widget{X: 1}; b := &Widget{Y: 2}`)
	sp1, ok, err := Scan(src, "&Widget", 0)
	if err != nil || !ok {
		t.Fatalf("first Scan failed: %v", err)
	}
	sp2, ok, err := Scan(src, "&Widget", sp1.End)
	if err != nil || !ok {
		t.Fatalf("second Scan failed: %v", err)
	}
	if sp2.Start < sp1.End {
		t.Errorf("spans overlap: %v then %v", sp1, sp2)
	}
	if got, want := string(src[sp2.Start:sp2.End]), `&Widget{Y: 2}`; got != want {
		t.Errorf("second span = %q, want %q", got, want)
	}
	if _, ok, _ := Scan(src, "&Widget", sp2.End); ok {
		t.Error("third Scan matched, want none")
	}
}

func TestScanUnterminated(t *testing.T) {
	src := []byte("d := &Widget{\n\tName: \"a\",\n")
	sp, ok, err := Scan(src, "&Widget", 0)
	if ok {
		t.Fatal("Scan reported a balanced span in unterminated input")
	}
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("Scan error = %v, want ErrUnterminated", err)
	}
	if sp.Start != 5 || sp.End != len(src) {
		t.Errorf("unterminated span = %v, want [5,%d)", sp, len(src))
	}
}

// Every span Scan returns must hold balanced braces outside string
// and comment regions.
func TestScanSpanBalance(t *testing.T) {
	srcs := []string{
		`d := &Widget{A: f(x{1}), B: []int{1, 2}, C: "}"}`,
		"d := &Widget{\n\tM: map[string]int{\"{\": 1},\n} // }\n",
		`a := &Widget{X: &Widget{Y: 1}}`,
	}
	for _, src := range srcs {
		sp, ok, err := Scan([]byte(src), "&Widget", 0)
		if err != nil || !ok {
			t.Fatalf("Scan(%q) = %v, %v, %v", src, sp, ok, err)
		}
		depth := 0
		b := []byte(src)
		for i := sp.Start; i < sp.End; {
			if j := skipNonCode(b, i); j > i {
				i = j
				continue
			}
			switch b[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}
		if depth != 0 {
			t.Errorf("Scan(%q): span %q unbalanced by %d", src, src[sp.Start:sp.End], depth)
		}
	}
}
