// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

// Package listing renders the file summary shown before each reconcile
// prompt: mode, size, modification time, and optionally the SELinux context
// of the live file and its variant.
package listing

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// Options controls optional columns.
type Options struct {
	// SELinux adds the security.selinux context column.
	SELinux bool
}

type entry struct {
	path    string
	mode    string
	size    int64
	mtime   time.Time
	context string
}

// Render writes the header and one line per file, oldest first so the prompt
// reads top to bottom in upgrade order.
func Render(w io.Writer, confFile, otherFile string, opts Options) error {
	fmt.Fprintf(w, "Configuration file '%s'\n", confFile)

	entries := make([]entry, 0, 2)
	for _, path := range []string{confFile, otherFile} {
		e, err := stat(path, opts)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].mtime.Before(entries[j].mtime)
	})

	for _, e := range entries {
		if opts.SELinux {
			fmt.Fprintf(w, "%s %8s %s %s %s (%s)\n",
				e.mode, humanize.Comma(e.size), e.mtime.Format("Jan _2 15:04"),
				e.context, e.path, humanize.Time(e.mtime))
		} else {
			fmt.Fprintf(w, "%s %8s %s %s (%s)\n",
				e.mode, humanize.Comma(e.size), e.mtime.Format("Jan _2 15:04"),
				e.path, humanize.Time(e.mtime))
		}
	}
	fmt.Fprintln(w)
	return nil
}

func stat(path string, opts Options) (entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return entry{}, err
	}
	e := entry{
		path:  path,
		mode:  info.Mode().String(),
		size:  info.Size(),
		mtime: info.ModTime(),
	}
	if opts.SELinux {
		e.context = selinuxContext(path)
	}
	return e, nil
}

// selinuxContext reads the security.selinux xattr. Systems without SELinux
// (or unlabeled files) get a "?" placeholder rather than an error.
func selinuxContext(path string) string {
	buf := make([]byte, 256)
	n, err := unix.Lgetxattr(path, "security.selinux", buf)
	if err != nil || n <= 0 {
		return "?"
	}
	// The attribute value is NUL-terminated.
	if buf[n-1] == 0 {
		n--
	}
	return string(buf[:n])
}
