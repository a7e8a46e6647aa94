// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go")
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0666))

	bak, err := Keep(path, []byte("v1"))
	require.NoError(t, err)
	require.Equal(t, path+".bak", bak)

	data, err := os.ReadFile(bak)
	require.NoError(t, err)
	require.Equal(t, "v1", string(data))
}

// The first backup predates every rewrite; later runs must not
// clobber it.
func TestKeepFirstWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go")

	_, err := Keep(path, []byte("original"))
	require.NoError(t, err)
	_, err = Keep(path, []byte("already rewritten once"))
	require.NoError(t, err)

	data, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	require.Equal(t, "original", string(data))
}

func TestKeepFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := Keep(filepath.Join(dir, "a.go"), []byte("x"))
	require.Error(t, err, "backup into a missing directory must fail, not proceed silently")
}
