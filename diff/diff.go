// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff formats the difference between two buffers by running
// the system 'diff' tool.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Diff returns the unified diff between old and new, labeled with the
// given names. A nil result means the inputs are identical.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}

	f1, err := tempFile(old)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)

	f2, err := tempFile(new)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		// diff exits 1 when the files differ; only a silent failure
		// is a real error.
		return nil, err
	}

	// Drop the two temp-file header lines and substitute our own, so
	// the output names the buffers rather than the temp files.
	body := data
	for i := 0; i < 2; i++ {
		j := bytes.IndexByte(body, '\n')
		if j < 0 {
			return data, nil
		}
		body = body[j+1:]
	}
	if len(body) == 0 || body[0] != '@' {
		return data, nil
	}
	hdr := fmt.Sprintf("diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	return append([]byte(hdr), body...), nil
}

func tempFile(data []byte) (string, error) {
	f, err := os.CreateTemp("", "ctorfix-diff")
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
