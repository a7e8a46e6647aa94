// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backup persists a recoverable copy of a file before it is
// rewritten. The engine calls Keep synchronously before its own write
// and treats failure as fatal for that file: without a safety copy,
// no rewrite is committed.
package backup

import (
	"fmt"
	"os"
)

// Keep writes orig to path+".bak" and returns the backup path. An
// existing backup is kept as is: the first backup of a run sequence
// is the one that predates every rewrite, so first wins.
func Keep(path string, orig []byte) (string, error) {
	bak := path + ".bak"
	if _, err := os.Stat(bak); err == nil {
		return bak, nil
	}
	if err := os.WriteFile(bak, orig, 0666); err != nil {
		return "", fmt.Errorf("keeping backup: %v", err)
	}
	return bak, nil
}
