// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package clean

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confctl/confctl/internal/fileops"
	"github.com/confctl/confctl/internal/rpmdb"
)

// fakeDB owns the base paths listed in owned; everything else is unowned.
type fakeDB struct {
	owned map[string]string
}

func (f fakeDB) Owner(_ context.Context, path string) (string, error) {
	if pkg, ok := f.owned[path]; ok {
		return pkg, nil
	}
	return "", fmt.Errorf("%s: %w", path, rpmdb.ErrUnowned)
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRunDeletesOrphans(t *testing.T) {
	dir := t.TempDir()
	orphan := filepath.Join(dir, "etc", "gone.conf.rpmsave")
	tracked := filepath.Join(dir, "etc", "app.conf.rpmnew")
	plain := filepath.Join(dir, "etc", "app.conf")
	touch(t, orphan)
	touch(t, tracked)
	touch(t, plain)

	var out bytes.Buffer
	s := &Scanner{
		DB:   fakeDB{owned: map[string]string{filepath.Join(dir, "etc", "app.conf"): "app"}},
		Dirs: []string{dir},
		In:   strings.NewReader("y\n"),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "These files need merging")
	assert.Contains(t, out.String(), tracked)
	assert.Contains(t, out.String(), "Orphaned .rpmnew and .rpmsave files:")
	assert.Contains(t, out.String(), orphan)

	_, err := os.Lstat(orphan)
	assert.True(t, os.IsNotExist(err), "orphan should be deleted")
	_, err = os.Lstat(tracked)
	assert.NoError(t, err, "tracked variant must survive clean")
	_, err = os.Lstat(plain)
	assert.NoError(t, err, "non-variant files are never touched")
}

func TestRunBareEnterDeletes(t *testing.T) {
	dir := t.TempDir()
	orphan := filepath.Join(dir, "stray.conf.rpmnew")
	touch(t, orphan)

	var out bytes.Buffer
	s := &Scanner{
		DB:   fakeDB{},
		Dirs: []string{dir},
		In:   strings.NewReader("\n"),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	_, err := os.Lstat(orphan)
	assert.True(t, os.IsNotExist(err))
}

func TestRunAnswerNoKeepsOrphans(t *testing.T) {
	dir := t.TempDir()
	orphan := filepath.Join(dir, "stray.conf.rpmnew")
	touch(t, orphan)

	var out bytes.Buffer
	s := &Scanner{
		DB:   fakeDB{},
		Dirs: []string{dir},
		In:   strings.NewReader("n\n"),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	_, err := os.Lstat(orphan)
	assert.NoError(t, err)
}

func TestRunNothingFound(t *testing.T) {
	var out bytes.Buffer
	s := &Scanner{
		DB:   fakeDB{},
		Dirs: []string{t.TempDir()},
		In:   strings.NewReader(""),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "No orphaned .rpmnew and .rpmsave files found.")
}

func TestRunSkipDirs(t *testing.T) {
	dir := t.TempDir()
	skipped := filepath.Join(dir, "mock", "chroot.conf.rpmsave")
	touch(t, skipped)

	var out bytes.Buffer
	s := &Scanner{
		DB:   fakeDB{},
		Dirs: []string{dir},
		Skip: []string{filepath.Join(dir, "mock")},
		In:   strings.NewReader(""),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "No orphaned")
	_, err := os.Lstat(skipped)
	assert.NoError(t, err)
}

// brokenDB fails every owner query the way a missing rpm binary would.
type brokenDB struct{}

func (brokenDB) Owner(_ context.Context, path string) (string, error) {
	return "", &exec.Error{Name: "rpm", Err: exec.ErrNotFound}
}

func TestRunOwnerFailureKeepsVariants(t *testing.T) {
	dir := t.TempDir()
	variant := filepath.Join(dir, "etc", "app.conf.rpmnew")
	touch(t, variant)

	var out bytes.Buffer
	s := &Scanner{
		DB:   brokenDB{},
		Dirs: []string{dir},
		In:   strings.NewReader("\n"),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	// Files rpm could not vouch for are neither reported as orphans nor
	// deleted, even on the delete-by-default answer.
	assert.NotContains(t, out.String(), "Orphaned .rpmnew and .rpmsave files:")
	assert.Contains(t, out.String(), "No orphaned .rpmnew and .rpmsave files found.")
	_, err := os.Lstat(variant)
	assert.NoError(t, err)
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	orphan := filepath.Join(dir, "stray.conf.rpmsave")
	touch(t, orphan)

	var out bytes.Buffer
	s := &Scanner{
		DB:   fakeDB{},
		Dirs: []string{dir},
		Ops:  fileops.Ops{DryRun: true, Out: &out},
		In:   strings.NewReader("y\n"),
		Out:  &out,
	}
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "rm "+orphan)
	_, err := os.Lstat(orphan)
	assert.NoError(t, err, "dry run must not delete")
}
