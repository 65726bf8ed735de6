// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package clean

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/confctl/confctl/internal/fileops"
	"github.com/confctl/confctl/internal/log"
	"github.com/confctl/confctl/internal/rpmdb"
	"github.com/confctl/confctl/internal/variant"
)

// DefaultDirs are the roots searched for leftover variant files.
var DefaultDirs = []string{"/etc", "/var", "/usr"}

// DefaultSkip lists directories excluded from the walk. Build chroots under
// /var/lib/mock mirror whole installations and would double every hit.
var DefaultSkip = []string{"/var/lib/mock"}

// ownerQuerier is the slice of rpmdb.Client the scanner needs.
type ownerQuerier interface {
	Owner(ctx context.Context, path string) (string, error)
}

// mergeCandidate is a variant file whose base config is still tracked by an
// installed package; deleting it would lose a pending reconcile.
type mergeCandidate struct {
	pkg  string
	path string
}

// Scanner finds .rpmnew/.rpmsave files under Dirs and offers to bulk-delete
// the ones no installed package tracks anymore.
type Scanner struct {
	DB   ownerQuerier
	Dirs []string
	Skip []string
	Ops  fileops.Ops

	In  io.Reader
	Out io.Writer
}

// Run performs the scan, reports files that still need merging, and prompts
// once to delete the orphans.
func (s *Scanner) Run(ctx context.Context) error {
	dirs := s.Dirs
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	skip := s.Skip
	if len(skip) == 0 {
		skip = DefaultSkip
	}

	var merge []mergeCandidate
	var orphans []string

	fmt.Fprint(s.Out, "Searching through: ")
	for _, dir := range dirs {
		fmt.Fprint(s.Out, dir+" ")
		for _, found := range s.walk(ctx, dir, skip) {
			base, _, _ := variant.Parse(found)
			pkg, err := s.DB.Owner(ctx, base)
			switch {
			case err == nil:
				merge = append(merge, mergeCandidate{pkg: pkg, path: found})
			case errors.Is(err, rpmdb.ErrUnowned):
				orphans = append(orphans, found)
			default:
				log.Warnf("owner query failed for %s: %v", base, err)
			}
		}
	}
	fmt.Fprintln(s.Out)

	if len(merge) > 0 {
		fmt.Fprintln(s.Out, "These files need merging - you may want to run 'confctl -a':")
		for _, m := range merge {
			fmt.Fprintf(s.Out, "%-20s: %s\n", m.pkg, m.path)
		}
		fmt.Fprintln(s.Out, "Skipping files above.")
		fmt.Fprintln(s.Out)
	}

	if len(orphans) == 0 {
		fmt.Fprintln(s.Out, "No orphaned .rpmnew and .rpmsave files found.")
		return nil
	}

	fmt.Fprintln(s.Out, "Orphaned .rpmnew and .rpmsave files:")
	for _, path := range orphans {
		fmt.Fprintln(s.Out, path)
	}

	if s.confirmDelete() {
		for _, path := range orphans {
			if err := s.Ops.Remove(path); err != nil {
				log.Errorf("failed to remove %s: %v", path, err)
			}
		}
	}
	return nil
}

// walk collects variant files under dir. Walk errors are logged and skipped;
// a partial scan is still useful.
func (s *Scanner) walk(ctx context.Context, dir string, skip []string) []string {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("walk %s: %v", path, err)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			for _, sk := range skip {
				if path == sk {
					return filepath.SkipDir
				}
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".rpmnew", ".rpmsave":
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		log.Warnf("scan of %s aborted: %v", dir, err)
	}
	return found
}

// confirmDelete asks once for the whole orphan batch. Bare enter deletes,
// matching the Y default.
func (s *Scanner) confirmDelete() bool {
	reader := bufio.NewReader(s.In)
	for {
		fmt.Fprint(s.Out, "Delete these files (Y/n): ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "", "Y":
			return true
		case "N":
			return false
		}
	}
}

// NewScanner wires a scanner to the operator's terminal.
func NewScanner(db *rpmdb.Client, dirs, skip []string, ops fileops.Ops) *Scanner {
	return &Scanner{
		DB:   db,
		Dirs: dirs,
		Skip: skip,
		Ops:  ops,
		In:   os.Stdin,
		Out:  os.Stdout,
	}
}
