// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"ctorfix/backup"
	"ctorfix/diff"
	"ctorfix/rewrite"
	"ctorfix/subst"
	"ctorfix/walk"
)

var (
	showDiff  = flag.Bool("diff", false, "show diff instead of writing files")
	verbose   = flag.Bool("v", false, "report per-file rewrite counts")
	workers   = flag.Int("n", runtime.GOMAXPROCS(0), "number of files rewritten concurrently")
	substPass = flag.Bool("subst", false, "run the call-prefix substitution pass instead of the structural rewrite")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ctorfix [-diff] [-subst] [-v] [-n workers] rules.yaml [path ...]\n")
	os.Exit(2)
}

func main() {
	log.SetPrefix("ctorfix: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
	}

	cfg, err := rewrite.LoadConfig(args[0])
	if err != nil {
		log.Fatal(err)
	}
	r := &runner{
		cfg:     cfg,
		diff:    *showDiff,
		subst:   *substPass,
		verbose: *verbose,
		workers: *workers,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	if err := r.run(args[1:]); err != nil {
		log.Fatal(err)
	}
}

// A runner holds the shared, read-only state of one run. Each file's
// rewrite is a pure function of the file's text plus this state, so
// files are processed independently by the worker pool.
type runner struct {
	cfg     *rewrite.Config
	diff    bool
	subst   bool
	verbose bool
	workers int
	stdout  io.Writer
	stderr  io.Writer
}

// A fileResult is what one worker reports back for one file.
type fileResult struct {
	name     string
	rewrites int
	changed  bool
	diff     []byte
	warnings []*rewrite.Error
	err      error
}

func (r *runner) run(roots []string) error {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	if r.subst && r.cfg.Subst.Prefix == "" {
		return fmt.Errorf("rule file has no subst section")
	}
	if r.workers < 1 {
		r.workers = 1
	}

	opts := walk.DefaultOptions(r.cfg.Exts)
	var files []string
	seen := make(map[string]bool)
	for _, root := range roots {
		list, err := walk.Files(root, opts)
		if err != nil {
			return err
		}
		for _, f := range list {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	sort.Strings(files)

	if r.verbose {
		if _, path, err := walk.Module(roots[0]); err == nil && path != "" {
			log.Printf("module %s: %d candidate files", path, len(files))
		}
	}

	// Fan out over the files. Results land in a fixed slice so the
	// summary below is deterministic regardless of completion order;
	// per-file failures are reported, not propagated, so one bad file
	// does not stop the run.
	results := make([]*fileResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			results[i] = r.file(name)
			return nil
		})
	}
	g.Wait()

	var changed, rewrites, failed int
	errs := new(rewrite.ErrorList)
	for _, res := range results {
		for _, e := range res.warnings {
			errs.Add(e)
		}
		if res.err != nil {
			failed++
			fmt.Fprintf(r.stderr, "%s: %v\n", res.name, res.err)
			continue
		}
		if !res.changed {
			continue
		}
		changed++
		rewrites += res.rewrites
		if r.verbose {
			log.Printf("%s: %d rewrites", res.name, res.rewrites)
		}
		if len(res.diff) > 0 {
			r.stdout.Write(res.diff)
		}
	}
	if err := errs.Err(); err != nil {
		fmt.Fprintf(r.stderr, "%s\n", err)
	}

	fmt.Fprintf(r.stdout, "%d files changed, %d rewrites\n", changed, rewrites)
	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}

// file processes a single file: read, rewrite in memory, then either
// render a diff or back up and write. The new text is complete before
// any I/O happens, so the file on disk is only ever the old buffer or
// the whole new one.
func (r *runner) file(name string) *fileResult {
	res := &fileResult{name: name}
	src, err := os.ReadFile(name)
	if err != nil {
		res.err = err
		return res
	}

	var out []byte
	if r.subst {
		s := r.cfg.Subst
		out, res.rewrites = subst.New(s.Prefix, s.Replacement, s.Methods).Apply(src)
	} else {
		fr := rewrite.File(src, r.cfg)
		out = fr.Text
		res.rewrites = fr.Rewrites
		for _, w := range fr.Warnings {
			res.warnings = append(res.warnings, &rewrite.Error{
				File: name,
				Line: w.Line,
				Col:  w.Col,
				Msg:  w.Err.Error(),
			})
		}
	}
	if res.rewrites == 0 || bytes.Equal(out, src) {
		return res
	}

	if r.diff {
		d, err := diff.Diff("old/"+name, src, "new/"+name, out)
		if err != nil {
			res.err = err
			return res
		}
		res.changed = true
		res.diff = d
		return res
	}

	if _, err := backup.Keep(name, src); err != nil {
		// No safety copy, no rewrite.
		res.err = err
		return res
	}
	if err := os.WriteFile(name, out, 0666); err != nil {
		res.err = err
		return res
	}
	res.changed = true
	return res
}
