// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package fileops

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/confctl/confctl/internal/log"
)

// Ops performs the filesystem mutations behind reconcile decisions. With
// DryRun set, every mutation prints the equivalent shell command instead of
// touching the filesystem.
type Ops struct {
	DryRun bool
	// Out receives dry-run command echoes. Defaults to os.Stdout.
	Out io.Writer
}

func (o Ops) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// Remove deletes the given file.
func (o Ops) Remove(path string) error {
	if o.DryRun {
		fmt.Fprintf(o.out(), "rm %s\n", path)
		return nil
	}
	log.Debugf("rm %s", path)
	return os.Remove(path)
}

// Overwrite replaces dst with src and removes src. Symlinks are recreated
// rather than dereferenced.
func (o Ops) Overwrite(src, dst string) error {
	if o.DryRun {
		fmt.Fprintf(o.out(), "cp --no-dereference %s %s\n", src, dst)
		return nil
	}
	log.Debugf("cp --no-dereference %s %s", src, dst)
	if err := copyPath(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyPath copies src to dst. A symlink is recreated pointing at the same
// target, replacing dst if it already exists. A regular file is copied with
// its mode and modification time preserved.
func copyPath(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		linkto, err := os.Readlink(src)
		if err != nil {
			return err
		}
		if err := os.Symlink(linkto, dst); err != nil {
			if !os.IsExist(err) {
				return err
			}
			if err := os.Remove(dst); err != nil {
				return err
			}
			return os.Symlink(linkto, dst)
		}
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// Equal reports whether two files have identical contents. Sizes are compared
// first so large differing files are rejected without a read.
func Equal(a, b string) (bool, error) {
	ia, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if ia.Size() != ib.Size() {
		return false, nil
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, 32*1024)
	bufB := make([]byte, 32*1024)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			if errB == io.EOF || errB == io.ErrUnexpectedEOF {
				return true, nil
			}
			return false, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}
