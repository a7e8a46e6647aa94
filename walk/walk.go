// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package walk enumerates the candidate source files for a rewrite
// run: it applies the extension filter, the directory blacklist, and
// the minified- and backup-file skips, and locates the enclosing Go
// module for reporting.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Options controls which files a walk yields.
type Options struct {
	// Exts keeps only files with one of these extensions.
	// Empty means every regular file.
	Exts []string

	// ExcludeDirs are directory base names that are not descended
	// into.
	ExcludeDirs []string

	// KeepMinified disables the ".min." file-name skip.
	KeepMinified bool
}

// DefaultOptions returns the walk options a rewrite run starts from:
// vendored, generated-asset, and VCS directories excluded, minified
// and backup files skipped.
func DefaultOptions(exts []string) Options {
	return Options{
		Exts: exts,
		ExcludeDirs: []string{
			".git",
			"node_modules",
			"vendor",
			"static",
			"docs",
		},
	}
}

// Files walks root and returns the relative paths of the candidate
// files, in lexical order. When root is itself a regular file it is
// returned as the single candidate, bypassing the filters, so that an
// explicitly named file is always processed.
func Files(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	skipDir := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		skipDir[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && skipDir[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if !keepExt(name, opts.Exts) {
			return nil
		}
		if !opts.KeepMinified && strings.Contains(name, ".min.") {
			return nil
		}
		if strings.HasSuffix(name, ".bak") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func keepExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Module finds the Go module enclosing dir by looking for go.mod in
// dir and its parents. It returns the module root directory and the
// module path declared in go.mod.
func Module(dir string) (root, path string, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			mf, err := modfile.ParseLax("go.mod", data, nil)
			if err != nil {
				return "", "", err
			}
			if mf.Module == nil {
				return dir, "", nil
			}
			return dir, mf.Module.Mod.Path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", os.ErrNotExist
		}
		dir = parent
	}
}
